package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
	"time"
)

//go:embed *.sql
var migrationsFS embed.FS

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Status describes whether a known migration has been applied
type Status struct {
	Version   int
	Name      string
	Applied   bool
	Dirty     bool
	AppliedAt *time.Time
}

type appliedMigration struct {
	dirty     bool
	appliedAt time.Time
}

// RunMigrations executes all pending migrations in version order.
// A migration is recorded as dirty before it runs and cleared when its transaction commits;
// a dirty record left behind blocks further runs until it is resolved by hand.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := createMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	if dirty := dirtyVersions(applied); len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state, failed migration(s): %v", dirty)
	}

	for _, migration := range migrations {
		if _, ok := applied[migration.Version]; ok {
			continue
		}
		if err := applyMigration(ctx, db, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
	}

	return nil
}

// Rollback reverts the most recently applied migration and returns its version.
// It returns 0 when nothing has been applied.
func Rollback(ctx context.Context, db *sql.DB) (int, error) {
	if err := createMigrationsTable(ctx, db); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return 0, fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		migration := migrations[i]
		if _, ok := applied[migration.Version]; !ok {
			continue
		}
		if err := revertMigration(ctx, db, migration); err != nil {
			return 0, fmt.Errorf("failed to revert migration %d (%s): %w", migration.Version, migration.Name, err)
		}
		return migration.Version, nil
	}

	return 0, nil
}

// GetStatus lists every embedded migration with its applied state
func GetStatus(ctx context.Context, db *sql.DB) ([]Status, error) {
	if err := createMigrationsTable(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	statuses := make([]Status, 0, len(migrations))
	for _, migration := range migrations {
		status := Status{Version: migration.Version, Name: migration.Name}
		if record, ok := applied[migration.Version]; ok {
			appliedAt := record.appliedAt
			status.Applied = !record.dirty
			status.Dirty = record.dirty
			status.AppliedAt = &appliedAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		dirty BOOLEAN DEFAULT FALSE
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func loadMigrations() ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version, name := parseFilename(entry.Name())
		if version == 0 {
			continue
		}

		upSQL, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := migrationsFS.ReadFile(downFile)
		if err != nil {
			return nil, fmt.Errorf("migration %d has no down file: %w", version, err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			Up:      string(upSQL),
			Down:    string(downSQL),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func getAppliedMigrations(ctx context.Context, db *sql.DB) (map[int]appliedMigration, error) {
	rows, err := db.QueryContext(ctx, "SELECT version, COALESCE(dirty, FALSE), applied_at FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]appliedMigration)
	for rows.Next() {
		var version int
		var dirty bool
		var appliedAt sql.NullString
		if err := rows.Scan(&version, &dirty, &appliedAt); err != nil {
			return nil, err
		}
		applied[version] = appliedMigration{dirty: dirty, appliedAt: parseAppliedAt(appliedAt.String)}
	}
	return applied, rows.Err()
}

func dirtyVersions(applied map[int]appliedMigration) []int {
	var dirty []int
	for version, record := range applied {
		if record.dirty {
			dirty = append(dirty, version)
		}
	}
	sort.Ints(dirty)
	return dirty
}

func applyMigration(ctx context.Context, db *sql.DB, migration Migration) error {
	if _, err := db.ExecContext(ctx, "INSERT INTO migrations (version, dirty) VALUES (?, TRUE)", migration.Version); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, migration.Up); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, "UPDATE migrations SET dirty = FALSE, applied_at = CURRENT_TIMESTAMP WHERE version = ?", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func revertMigration(ctx context.Context, db *sql.DB, migration Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, migration.Down); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM migrations WHERE version = ?", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// parseAppliedAt accepts both the CURRENT_TIMESTAMP text form and RFC3339
func parseAppliedAt(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseFilename splits "001_create_users.up.sql" into 1 and "create_users"
func parseFilename(filename string) (int, string) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, ""
	}
	base := strings.TrimSuffix(filename, ".up.sql")
	if idx := strings.Index(base, "_"); idx >= 0 {
		return version, base[idx+1:]
	}
	return version, base
}
