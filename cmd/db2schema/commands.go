package main

import (
	"context"
	"fmt"

	"db2schema/internal/db2"
	"db2schema/internal/introspect"
	"db2schema/internal/storage"
	"db2schema/internal/syncdb"
	"db2schema/internal/testdb"
)

type createTestDBCmd struct{}

func (c *createTestDBCmd) Run(g *Globals) error {
	e, err := load(g)
	if err != nil {
		return err
	}
	if !e.cfg.Database.AcceptsDB2DDL() {
		return fmt.Errorf("create-test-db: database.kind %q cannot run DB2 DDL; use db2 or sqlite", e.cfg.Database.Kind)
	}
	defer setupMetrics(e.cfg.Metrics, e.logger(), e.verbosity)()

	ctx := context.Background()
	repo, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	name, err := e.creation(repo).CreateTestDB(ctx, &e.cfg.Database, e.verbosity)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.stdout, name)
	return nil
}

type destroyTestDBCmd struct{}

func (c *destroyTestDBCmd) Run(g *Globals) error {
	e, err := load(g)
	if err != nil {
		return err
	}
	defer setupMetrics(e.cfg.Metrics, e.logger(), e.verbosity)()

	td := &testdb.Creation{Job: e.cfg.Metrics.JobOrDefault(), Logger: e.logger()}
	name, err := td.DestroyTestDB(context.Background(), &e.cfg.Database, e.verbosity)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.stdout, name)
	return nil
}

type sqlCmd struct{}

func (c *sqlCmd) Run(g *Globals) error {
	e, err := load(g)
	if err != nil {
		return err
	}
	stmts, err := syncdb.Plan(e.models, db2.NewAdapter(nil, e.models), e.style())
	if err != nil {
		return err
	}
	for _, s := range stmts {
		fmt.Fprintln(g.stdout, s)
	}
	return nil
}

type tablesCmd struct {
	All bool `name:"all" help:"List every model table, present or not."`
}

func (c *tablesCmd) Run(g *Globals) error {
	e, err := load(g)
	if err != nil {
		return err
	}
	ctx := context.Background()
	repo, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	tables, err := introspect.ModelTables(ctx, repo, e.models, !c.All)
	if err != nil {
		return err
	}
	for _, t := range tables {
		fmt.Fprintln(g.stdout, t)
	}
	return nil
}

type validateCmd struct{}

func (c *validateCmd) Run(g *Globals) error {
	e, err := load(g)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.stdout, "Configuration is valid: %s (%d models)\n", g.Config, e.models.Len())
	return nil
}

type kindsCmd struct{}

func (c *kindsCmd) Run(g *Globals) error {
	for _, k := range storage.ListKinds() {
		fmt.Fprintln(g.stdout, k)
	}
	return nil
}
