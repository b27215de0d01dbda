package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/aussiebroadwan/minipost/pkg/credstore/migrations"

	_ "modernc.org/sqlite"
)

const sqliteBackend = "sqlite"

// SQLiteStore keeps the credential in a single key/value table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens dsn. Call ApplyMigrations before first use.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, wrapErr(sqliteBackend, "open", err)
	}

	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, wrapErr(sqliteBackend, "open", fmt.Errorf("%w: %v", ErrUnavailable, err))
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// ApplyMigrations brings the schema up to date using the embedded migration
// files.
func (s *SQLiteStore) ApplyMigrations() error {
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", source, "", driver)
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Credential, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM credentials`)
	if err != nil {
		return Credential{}, wrapErr(sqliteBackend, "load", err)
	}
	defer rows.Close()

	entries := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Credential{}, wrapErr(sqliteBackend, "load", err)
		}
		entries[k] = v
	}
	if err := rows.Err(); err != nil {
		return Credential{}, wrapErr(sqliteBackend, "load", err)
	}

	return fromEntries(entries), nil
}

func (s *SQLiteStore) Save(ctx context.Context, cred Credential) error {
	return wrapErr(sqliteBackend, "save", s.withTx(ctx, func(tx *sql.Tx) error {
		for k, v := range cred.entries() {
			if v == "" {
				if _, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, k); err != nil {
					return err
				}
				continue
			}

			_, err := tx.ExecContext(ctx, `
				INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
				k, v, s.now().UTC(),
			)
			if err != nil {
				return err
			}
		}
		return nil
	}))
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	return wrapErr(sqliteBackend, "clear", err)
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// withTx runs fn in a transaction, rolling back on error.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
