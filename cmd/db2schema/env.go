package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"db2schema/internal/config"
	"db2schema/internal/db2"
	"db2schema/internal/ddl"
	"db2schema/internal/model"
	"db2schema/internal/storage"
	_ "db2schema/internal/storage/all"
	"db2schema/internal/syncdb"
	"db2schema/internal/testdb"
)

// env is the loaded configuration and models for one invocation.
type env struct {
	g         *Globals
	cfg       config.File
	models    *model.Registry
	verbosity int
}

// load reads the configuration, applies the environment, validates it and
// loads the models file. Issues are printed to stderr; errors stop the run.
func load(g *Globals) (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if g.MetricsBackend != "" {
		cfg.Metrics.Backend = g.MetricsBackend
	}
	if g.PushgatewayURL != "" {
		cfg.Metrics.PushgatewayURL = g.PushgatewayURL
	}

	issues := config.ValidateFile(cfg)
	for _, iss := range issues {
		fmt.Fprintf(g.stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return nil, fmt.Errorf("configuration is invalid: %s", g.Config)
	}

	reg, err := model.LoadFile(cfg.Models)
	if err != nil {
		return nil, err
	}

	v := cfg.Runtime.Verbosity
	if g.Verbose > 0 {
		v = g.Verbose
	}
	return &env{g: g, cfg: cfg, models: reg, verbosity: v}, nil
}

// style picks ColorStyle when asked to, or when stdout is a terminal in auto
// mode.
func (e *env) style() ddl.Style {
	switch e.g.Color {
	case "always":
		return ddl.ColorStyle{}
	case "never":
		return ddl.PlainStyle{}
	}
	if f, ok := e.g.stdout.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return ddl.ColorStyle{}
	}
	return ddl.PlainStyle{}
}

func (e *env) logger() *log.Logger {
	return log.New(e.g.stderr, "", log.LstdFlags)
}

// open connects to the configured database.
func (e *env) open(ctx context.Context) (storage.Repository, error) {
	repo, err := storage.New(ctx, storage.ConfigFrom(&e.cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", e.cfg.Database.Kind, err)
	}
	return repo, nil
}

// creation wires test database setup to repo.
func (e *env) creation(repo storage.Repository) *testdb.Creation {
	job := e.cfg.Metrics.JobOrDefault()
	syncer := &syncdb.Syncer{
		Registry: e.models,
		Adapter:  db2.NewAdapter(repo, e.models),
		DB:       repo,
		Style:    ddl.PlainStyle{},
		Job:      job,
		Logger:   e.logger(),
	}
	c := testdb.New(repo, e.models, syncer)
	c.Job = job
	c.Logger = e.logger()
	return c
}
