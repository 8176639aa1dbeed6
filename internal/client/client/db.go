package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/dmitrijs2005/mriscan/internal/client/migrations"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/reports"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/sessions"
)

// Repositories bundles the profile-backed repositories.
type Repositories struct {
	Metadata metadata.Repository
	Accounts accounts.Repository
	Sessions sessions.Repository
	Reports  reports.Repository
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the SQLite profile at dsn and
// migrates it. The caller owns the returned handle.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one writer; keeps transactions from tripping over SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// NewRepositories wires the typed repositories over one profile database.
func NewRepositories(db *sql.DB) *Repositories {
	return NewRepositoriesOver(metadata.NewSQLiteRepository(db))
}

// NewRepositoriesOver wires the typed repositories over any key/value
// store; tests pass metadata.NewMemoryRepository().
func NewRepositoriesOver(kv metadata.Repository) *Repositories {
	return &Repositories{
		Metadata: kv,
		Accounts: accounts.NewMetadataRepository(kv),
		Sessions: sessions.NewMetadataRepository(kv),
		Reports:  reports.NewMetadataRepository(kv),
	}
}
