// Package syncdb creates the tables of every registered model that does not
// exist yet, then the indexes of the tables it created. Foreign keys to models
// created later in the same run are added with ALTER TABLE once their target
// exists.
package syncdb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"db2schema/internal/ddl"
	"db2schema/internal/introspect"
	"db2schema/internal/metrics"
	"db2schema/internal/model"
	"db2schema/internal/storage"
)

// ErrInteractive is returned when Options.Interactive is set.
var ErrInteractive = errors.New("syncdb: interactive mode is not supported")

// Adapter renders the DDL for one engine; *db2.Adapter implements it.
type Adapter interface {
	SQLCreateModel(m *model.Model, s ddl.Style, known ddl.KnownModels) ([]string, ddl.PendingReferences, error)
	SQLForPendingReferences(m *model.Model, s ddl.Style, pending ddl.PendingReferences) ([]string, error)
	SQLIndexesForModel(m *model.Model, s ddl.Style) []string
}

// Session is the part of a storage.Repository sync needs.
type Session interface {
	storage.TableLister
	Cursor(ctx context.Context) (storage.Cursor, error)
}

// Options controls one Sync call.
type Options struct {
	// Verbosity: 1 logs created tables, 2 also logs every statement.
	Verbosity int
	// Database is the alias of the target connection, for logging.
	Database string
	// Interactive must be false; prompting is not supported.
	Interactive bool
}

// Result summarises a Sync call.
type Result struct {
	// Created lists the tables created, in creation order.
	Created []string
	// Statements counts every statement executed.
	Statements int
}

// Syncer runs schema sync for a model registry.
type Syncer struct {
	Registry *model.Registry
	Adapter  Adapter
	DB       Session

	// Style decorates generated SQL in logs; nil means ddl.PlainStyle.
	Style ddl.Style
	// Job labels recorded metrics.
	Job string
	// Logger receives progress lines; nil means log.Default().
	Logger *log.Logger
}

// Sync creates missing tables in registry order and then their indexes.
// The first failing statement stops the run and is returned wrapped.
func (s *Syncer) Sync(ctx context.Context, opts Options) (res Result, err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(s.Job, metrics.StepSync, err, time.Since(start)) }()

	if opts.Interactive {
		return Result{}, ErrInteractive
	}
	if s.Registry == nil || s.Adapter == nil || s.DB == nil {
		return Result{}, errors.New("syncdb: registry, adapter and session are required")
	}
	logger := s.logger()
	style := s.Style
	if style == nil {
		style = ddl.PlainStyle{}
	}

	existing, err := introspect.ExistingTables(ctx, s.DB)
	if err != nil {
		return Result{}, fmt.Errorf("syncdb: %w", err)
	}

	known := ddl.KnownModels{}
	for _, m := range s.Registry.Models() {
		if existing[strings.ToLower(m.TableName())] {
			known[m.Name] = true
		}
	}

	cur, err := s.DB.Cursor(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("syncdb: %w", err)
	}
	defer func() {
		if cerr := cur.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("syncdb: close cursor: %w", cerr)
		}
	}()

	exec := func(kind, stmt string) error {
		if opts.Verbosity >= 2 {
			logger.Printf("syncdb: %s", stmt)
		}
		if err := cur.Execute(ctx, stmt); err != nil {
			return fmt.Errorf("syncdb: %s: %w", kind, err)
		}
		metrics.RecordStatement(s.Job, kind)
		res.Statements++
		return nil
	}

	if opts.Verbosity >= 1 {
		logger.Printf("syncdb: creating tables database=%s", aliasOrDefault(opts.Database))
	}

	pending := ddl.PendingReferences{}
	var created []*model.Model
	for _, m := range s.Registry.Models() {
		if known[m.Name] {
			continue
		}
		stmts, refs, err := s.Adapter.SQLCreateModel(m, style, known)
		if err != nil {
			return res, fmt.Errorf("syncdb: %w", err)
		}
		known[m.Name] = true
		pending.Merge(refs)
		alters, err := s.Adapter.SQLForPendingReferences(m, style, pending)
		if err != nil {
			return res, fmt.Errorf("syncdb: %w", err)
		}

		if opts.Verbosity >= 1 {
			logger.Printf("syncdb: creating table %s", m.TableName())
		}
		for _, stmt := range stmts {
			if err := exec(metrics.KindCreateTable, stmt); err != nil {
				return res, err
			}
		}
		for _, stmt := range alters {
			if err := exec(metrics.KindAddConstraint, stmt); err != nil {
				return res, err
			}
		}
		created = append(created, m)
		res.Created = append(res.Created, m.TableName())
	}

	for _, m := range created {
		idx := s.Adapter.SQLIndexesForModel(m, style)
		if len(idx) > 0 && opts.Verbosity >= 2 {
			logger.Printf("syncdb: installing indexes for %s", m.Name)
		}
		for _, stmt := range idx {
			if err := exec(metrics.KindCreateIndex, stmt); err != nil {
				return res, err
			}
		}
	}

	if len(pending) > 0 {
		for target := range pending {
			logger.Printf("syncdb: unresolved references to %s; target model was not created", target)
		}
	}
	return res, nil
}

func (s *Syncer) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

func aliasOrDefault(alias string) string {
	if alias == "" {
		return "default"
	}
	return alias
}
