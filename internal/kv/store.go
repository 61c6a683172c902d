package kv

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/neoportfolio/internal/dbx"
	"github.com/dmitrijs2005/neoportfolio/internal/kv/migrations"
)

// Store is a Repository over an owned database that can also run
// read-modify-write updates atomically.
type Store struct {
	*SQLiteRepository
	db *sql.DB
}

// UpdateFunc receives the current value (ok=false when absent) and returns
// the value to write.
type UpdateFunc func(current string, ok bool) (string, error)

// Update applies fn to key inside a single transaction.
func (s *Store) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		current, ok, err := repo.Get(ctx, key)
		if err != nil {
			return err
		}
		next, err := fn(current, ok)
		if err != nil {
			return err
		}
		return repo.Set(ctx, key, next)
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUp(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the SQLite database at dsn and
// migrates it.
func InitDatabase(ctx context.Context, dsn string) (*Store, error) {
	db, err := dbx.OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{SQLiteRepository: NewSQLiteRepository(db), db: db}, nil
}
