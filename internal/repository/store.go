// Package repository provides the PostgreSQL data access layer.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Store wraps the database handle and provides transaction scoping. It is
// injected into each repository so no package-level connection exists.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new Store around an open connection pool.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying sqlx.DB instance.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Ping tests the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTransaction executes fn within a transaction. The transaction is rolled
// back on error and on panic, committed otherwise.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// pq error code for foreign_key_violation.
const pgForeignKeyViolation = "23503"

// foreignKeyViolation returns the violated constraint name when err is a
// Postgres foreign-key violation, or "" otherwise.
func foreignKeyViolation(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
		return pqErr.Constraint
	}
	return ""
}

// referencesTable reports whether the violated constraint points at the given
// table, based on the fk_<table>_... naming used in the schema.
func referencesTable(constraint, table string) bool {
	return strings.Contains(constraint, table)
}
