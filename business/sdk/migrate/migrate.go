// Package migrate contains the schema for the database and the support to
// apply it.
package migrate

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
)

var (
	//go:embed sql/schema.sql
	schemaDoc string

	//go:embed sql/seed.sql
	seedDoc string
)

// Migrate applies the schema to the database. The DDL is idempotent so the
// function can run on every deploy.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schemaDoc); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	return nil
}

// Seed loads development data into the database inside a transaction.
func Seed(ctx context.Context, db *sqlx.DB) (err error) {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if errTx := tx.Rollback(); errTx != nil && !errors.Is(errTx, sql.ErrTxDone) {
			err = fmt.Errorf("rollback: %w", errTx)
		}
	}()

	if _, err := tx.ExecContext(ctx, seedDoc); err != nil {
		return fmt.Errorf("applying seed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
