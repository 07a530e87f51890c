package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"qbank/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrDirty is returned when a previous migration failed half way.
var ErrDirty = errors.New("schema_migrations is dirty; fix the schema and force a version")

// Migrator applies versioned SQL files read through a golang-migrate source
// driver and tracks progress in schema_migrations(version, dirty).
type Migrator struct {
	db  *sqlx.DB
	src source.Driver
	log *zap.Logger
}

// NewMigrator reads migrations from dir inside fsys.
func NewMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}
	return &Migrator{db: db, src: src, log: logger.Get()}, nil
}

func (m *Migrator) Close() error {
	return m.src.Close()
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, "CREATE TABLE schema_migrations (version NUMBER(19) NOT NULL, dirty NUMBER(1) NOT NULL)")
	if err != nil && !strings.Contains(err.Error(), "ORA-00955") {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

// Version returns the applied version, 0 when nothing has run.
func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, false, err
	}
	var row struct {
		Version int64 `db:"VERSION"`
		Dirty   bool  `db:"DIRTY"`
	}
	err := m.db.GetContext(ctx, &row, "SELECT version AS VERSION, dirty AS DIRTY FROM schema_migrations FETCH FIRST 1 ROWS ONLY")
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return uint(row.Version), row.Dirty, nil
}

// Up applies every pending migration and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	version, dirty, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, ErrDirty
	}

	applied := 0
	for {
		next, err := m.nextVersion(version)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return applied, err
		}

		body, ident, err := m.read(next, m.src.ReadUp)
		if err != nil {
			return applied, err
		}
		if err := m.apply(ctx, next, next, ident, body); err != nil {
			return applied, err
		}
		version = next
		applied++
	}

	m.log.Info("Migrations completed", zap.Int("applied", applied), zap.Uint("version", version))
	return applied, nil
}

// Down reverts up to steps migrations.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	version, dirty, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, ErrDirty
	}

	reverted := 0
	for version > 0 && reverted < steps {
		body, ident, err := m.read(version, m.src.ReadDown)
		if err != nil {
			return reverted, err
		}

		prev, err := m.src.Prev(version)
		if errors.Is(err, fs.ErrNotExist) {
			prev = 0
		} else if err != nil {
			return reverted, fmt.Errorf("failed to find migration before %d: %w", version, err)
		}

		if err := m.apply(ctx, version, prev, ident, body); err != nil {
			return reverted, err
		}
		version = prev
		reverted++
	}
	return reverted, nil
}

// Force overwrites the recorded version and clears the dirty flag.
func (m *Migrator) Force(ctx context.Context, version uint) error {
	if err := m.ensureVersionTable(ctx); err != nil {
		return err
	}
	return m.setVersion(ctx, version, false)
}

func (m *Migrator) nextVersion(current uint) (uint, error) {
	if current == 0 {
		return m.src.First()
	}
	return m.src.Next(current)
}

func (m *Migrator) read(version uint, readFn func(uint) (io.ReadCloser, string, error)) (string, string, error) {
	r, ident, err := readFn(version)
	if err != nil {
		return "", "", fmt.Errorf("failed to read migration %d: %w", version, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to read migration %d: %w", version, err)
	}
	return string(data), ident, nil
}

// apply marks running as dirty, executes body and records target as clean.
func (m *Migrator) apply(ctx context.Context, running, target uint, ident, body string) error {
	if err := m.setVersion(ctx, running, true); err != nil {
		return err
	}
	for _, stmt := range SplitStatements(body) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d_%s failed: %w", running, ident, err)
		}
	}
	if err := m.setVersion(ctx, target, false); err != nil {
		return err
	}
	m.log.Info("Executed migration", zap.Uint("version", running), zap.String("name", ident))
	return nil
}

func (m *Migrator) setVersion(ctx context.Context, version uint, dirty bool) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin version update: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if version > 0 || dirty {
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, dirty) VALUES (:1, :2)", int64(version), dirty); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}
	return tx.Commit()
}

// SplitStatements breaks a migration file into statements Oracle can run one
// at a time. Statements end with ';' at the end of a line; "--" comment lines
// are dropped.
func SplitStatements(body string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	flush := func() {
		stmt := strings.TrimSpace(current.String())
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
		current.Reset()
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(strings.TrimRight(line, " \t\r"), ";"))
			flush()
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	flush()
	return stmts
}
