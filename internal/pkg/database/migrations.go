package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration is one versioned schema change. Versions are applied in ascending order, once.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_attendance_schema",
		SQL: `
			CREATE TABLE IF NOT EXISTS employees (
				id            BIGSERIAL PRIMARY KEY,
				platform_id   VARCHAR(64)  NOT NULL UNIQUE,
				username      VARCHAR(100) NOT NULL,
				display_name  VARCHAR(100),
				email         VARCHAR(255),
				department    VARCHAR(100),
				position      VARCHAR(100),
				is_active     BOOLEAN      NOT NULL DEFAULT TRUE,
				created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
				updated_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
			);

			CREATE TABLE IF NOT EXISTS attendance (
				id                  BIGSERIAL PRIMARY KEY,
				employee_id         BIGINT      NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
				date                DATE        NOT NULL,
				check_in_time       TIMESTAMPTZ,
				check_out_time      TIMESTAMPTZ,
				today_plan          TEXT,
				yesterday_task      TEXT,
				current_status      VARCHAR(500),
				accomplishments     TEXT,
				blockers            TEXT,
				tomorrow_priorities TEXT,
				overall_rating      INTEGER CHECK (overall_rating BETWEEN 1 AND 5),
				created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (employee_id, date)
			);
			CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (date);

			CREATE TABLE IF NOT EXISTS admin_users (
				id            BIGSERIAL PRIMARY KEY,
				username      VARCHAR(50)  NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
			);
		`,
	},
	{
		Version: 2,
		Name:    "add_project_settings_and_leaves",
		SQL: `
			CREATE TABLE IF NOT EXISTS project_settings (
				id            BIGSERIAL PRIMARY KEY,
				setting_key   VARCHAR(100) NOT NULL UNIQUE,
				setting_value TEXT         NOT NULL,
				description   TEXT,
				created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
				updated_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
			);

			INSERT INTO project_settings (setting_key, setting_value, description)
			VALUES ('project_start_date', TO_CHAR(CURRENT_DATE, 'YYYY-MM-DD'),
			        'The date when the attendance tracking project was deployed and started')
			ON CONFLICT (setting_key) DO NOTHING;

			CREATE TABLE IF NOT EXISTS leaves (
				id          BIGSERIAL PRIMARY KEY,
				employee_id BIGINT      NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
				date        DATE        NOT NULL,
				description TEXT        NOT NULL,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (employee_id, date)
			);
			CREATE INDEX IF NOT EXISTS idx_leaves_date ON leaves (date);
		`,
	},
	{
		Version: 3,
		Name:    "add_work_from_and_holidays",
		SQL: `
			DO $$
			BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'work_from_enum') THEN
					CREATE TYPE work_from_enum AS ENUM ('office', 'remote');
				END IF;
			END $$;

			ALTER TABLE attendance ADD COLUMN IF NOT EXISTS work_from work_from_enum;

			CREATE TABLE IF NOT EXISTS holidays (
				id          BIGSERIAL PRIMARY KEY,
				date        DATE         NOT NULL UNIQUE,
				name        VARCHAR(255) NOT NULL,
				description TEXT,
				created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
				updated_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
			);
		`,
	},
	{
		Version: 4,
		Name:    "add_annual_leave_settings",
		SQL: `
			INSERT INTO project_settings (setting_key, setting_value, description) VALUES
				('annual_leave_reset_date', '07-16', 'The date when annual leave allowance resets (format: MM-DD)'),
				('annual_leave_days', '14', 'Default annual leave days allocated per employee')
			ON CONFLICT (setting_key) DO NOTHING;
		`,
	},
}

// migrationLockKey is the advisory lock the api and bot processes take before migrating,
// so only one of them applies a given version.
const migrationLockKey int64 = 0x61747472 // "attr"

// RunMigrations applies every migration newer than the recorded schema version.
// The version is read and applied while holding a session advisory lock.
func RunMigrations(ctx context.Context, db *DB) error {
	slog.Info("Running database migrations...")

	conn, err := db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire migration connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
		return fmt.Errorf("take migration lock: %w", err)
	}
	defer func() {
		// ctx may be cancelled by now; the lock must still go before the conn returns to the pool
		if _, err := conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationLockKey); err != nil {
			slog.Warn("Failed to release migration lock, dropping connection", "error", err)
			_ = conn.Conn().Close(context.Background())
		}
	}()

	_, err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       VARCHAR(255) NOT NULL,
			applied_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := conn.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := applyMigration(ctx, conn, m); err != nil {
			return err
		}
		slog.Info("Applied migration", "version", m.Version, "name", m.Name)
		applied++
	}

	slog.Info("Database migrations completed successfully", "applied", applied, "version", max(current, latestVersion()))
	return nil
}

func applyMigration(ctx context.Context, conn *pgxpool.Conn, m Migration) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.Version, err)
	}
	defer tx.Rollback(ctx)

	// Simple protocol so a migration may hold several statements.
	if _, err := tx.Exec(ctx, m.SQL, pgx.QueryExecModeSimpleProtocol); err != nil {
		return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name); err != nil {
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}
	return tx.Commit(ctx)
}

func latestVersion() int {
	latest := 0
	for _, m := range migrations {
		latest = max(latest, m.Version)
	}
	return latest
}
