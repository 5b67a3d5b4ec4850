package organizer

import (
	"context"
	"database/sql"
	"fmt"
)

// UnitOfWork scopes a request's storage access to one transaction.
type UnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn against a Service bound to a fresh transaction. The transaction
// is committed when fn returns nil and rolled back on error or panic.
func (u *UnitOfWork) Do(ctx context.Context, fn func(*Service) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // no-op after commit
	}()

	if err := fn(NewService(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit unit of work: %w", err)
	}
	return nil
}
