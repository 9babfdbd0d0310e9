package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-care-tracker/internal/platform/logger"
)

const (
	// TargetSchemaVersion es la versión más alta que entiende este binario.
	TargetSchemaVersion int64 = 1
	Component                 = "petcare"
)

// SchemaVersion devuelve 0 si la tabla de versiones no existe todavía.
func SchemaVersion(ctx context.Context, db *sql.DB) (int64, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, `SELECT to_regclass('petcare_versions') IS NOT NULL`).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check versions table: %w", err)
	}
	if !exists {
		return 0, nil
	}

	var v int64
	err := db.QueryRowContext(ctx, `SELECT version FROM petcare_versions WHERE component = $1`, Component).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// Migrate lleva la base a TargetSchemaVersion. Solo sabe inicializar desde 0;
// una base más nueva que el binario es un error.
func Migrate(ctx context.Context, db *sql.DB, log logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	current, err := SchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	switch {
	case current == TargetSchemaVersion:
		log.Info("schema up to date", map[string]any{"version": current})
		return nil
	case current > TargetSchemaVersion:
		return fmt.Errorf("schema version %d is newer than supported %d; upgrade the application", current, TargetSchemaVersion)
	case current != 0:
		return fmt.Errorf("migration from schema version %d is not supported", current)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, SchemaV1); err != nil {
		return fmt.Errorf("apply schema v1: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO petcare_versions (component, version) VALUES ($1, $2)
		ON CONFLICT (component) DO UPDATE SET version = EXCLUDED.version, created_at = now()
	`, Component, TargetSchemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	log.Info("schema initialized", map[string]any{"version": TargetSchemaVersion})
	return nil
}
