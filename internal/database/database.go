package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/klokku/mealplanner/internal/config"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrationsFS embed.FS

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// DB bundles the connection pool with the dialect its queries have to be written for.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect

	// migrateURL is set for servers, where migrations run over their own connection.
	migrateURL string
}

// Rebind rewrites '?' placeholders to the dialect's bind syntax. Queries are
// written once with '?' and never contain literal question marks.
func (d *DB) Rebind(query string) string {
	if d.Dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d *DB) Close() error {
	return d.SQL.Close()
}

// Open opens the configured database and pings it.
func Open(cfg config.Database) (*DB, error) {
	switch Dialect(cfg.Driver) {
	case SQLite:
		return openSQLite(cfg.Path)
	case Postgres:
		return openPostgres(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// OpenSQLite opens a SQLite database at path. ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*DB, error) {
	return openSQLite(path)
}

func openSQLite(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer, and an in-memory database only lives as long as its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Debugf("opened sqlite database at %s", path)
	return &DB{SQL: db, Dialect: SQLite}, nil
}

func openPostgres(cfg config.Database) (*DB, error) {
	// Escape single quotes in password for PostgreSQL connection string
	escapedPassword := strings.ReplaceAll(cfg.Pass, "'", "\\'")

	dsn := fmt.Sprintf("host=%s port=%d user=%s password='%s' dbname=%s sslmode=disable search_path=%s",
		cfg.Host, cfg.Port, cfg.User, escapedPassword, cfg.Name, cfg.Schema)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Debugf("opened postgres database %s on %s:%d", cfg.Name, cfg.Host, cfg.Port)

	migrateURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Pass), cfg.Host, cfg.Port, cfg.Name, cfg.Schema)
	return &DB{SQL: db, Dialect: Postgres, migrateURL: migrateURL}, nil
}

// Migrate creates or upgrades the meals, ingredients and plan tables. It is
// safe to call on every start.
func Migrate(db *DB) error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(db.Dialect))
	if err != nil {
		return fmt.Errorf("failed to create iofs driver: %w", err)
	}

	var m *migrate.Migrate
	switch db.Dialect {
	case SQLite:
		driver, err := sqlite.WithInstance(db.SQL, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("failed to create migrate driver: %w", err)
		}
		// Not closed: closing the driver closes db.SQL, which the caller still owns.
		m, err = migrate.NewWithInstance("iofs", src, string(SQLite), driver)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
	case Postgres:
		m, err = migrate.NewWithSourceInstance("iofs", src, db.migrateURL)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
		defer m.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, db.Dialect)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	log.Debug("database migrations applied")
	return nil
}
