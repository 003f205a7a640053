// Package store is the studio's local record store: typed, fault-reporting
// stores for task completion, calendar preferences and offline-published
// blueprints, kept in an SQLite key/value table.
//
// Each store reads and rewrites its whole value per change. Write failures
// come back as *StorageError so callers can tell a full disk from disabled
// storage from anything else. Corrupt stored JSON never fails a read; the
// store logs it and returns its default.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/blueprint/internal/client/migrations"
	"github.com/dmitrijs2005/blueprint/internal/client/repositories/records"
	"github.com/dmitrijs2005/blueprint/internal/filex"
	"github.com/dmitrijs2005/blueprint/internal/logging"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Options struct {
	// Path is the SQLite DSN, e.g. "studio.db" or ":memory:".
	Path string
	// QuotaPages caps the database size in pages; 0 means no cap.
	QuotaPages int
	// ReadOnly opens the store with writes disabled.
	ReadOnly bool
}

type Stores struct {
	Completion  *CompletionStore
	Preferences *PreferencesStore
	Published   *PublishedStore

	db *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens the database, migrates it and builds the stores.
func Open(ctx context.Context, opts Options, logger logging.Logger) (*Stores, error) {
	if err := filex.EnsureParentDir(opts.Path); err != nil {
		return nil, wrap("open", opts.Path, err)
	}

	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, wrap("open", opts.Path, err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, wrap("migrate", opts.Path, err)
	}

	if opts.QuotaPages > 0 {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA max_page_count = %d", opts.QuotaPages)); err != nil {
			_ = db.Close()
			return nil, wrap("configure", opts.Path, err)
		}
	}
	if opts.ReadOnly {
		if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
			_ = db.Close()
			return nil, wrap("configure", opts.Path, err)
		}
	}

	return New(db, records.NewSQLiteRepository(db), logger), nil
}

// New builds the stores over an already prepared repository. db may be nil
// when the caller owns its lifetime.
func New(db *sql.DB, repo records.Repository, logger logging.Logger) *Stores {
	logger = logger.With("module", "store")
	return &Stores{
		Completion:  NewCompletionStore(repo, logger),
		Preferences: NewPreferencesStore(repo, logger),
		Published:   NewPublishedStore(repo, logger),
		db:          db,
	}
}

func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
