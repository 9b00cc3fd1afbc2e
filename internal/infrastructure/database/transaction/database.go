// Package transaction carries the active *gorm.DB transaction on the context.
package transaction

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"jan-server/services/messaging-api/internal/domain/unitofwork"
)

type TransactionContextKey struct{}

func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TransactionContextKey{}, tx)
}

// Database hands repositories the transaction bound to the context, or the pool outside one.
type Database struct {
	db *gorm.DB
}

var _ unitofwork.Transactor = (*Database)(nil)

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db}
}

func (t *Database) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return t.db.WithContext(ctx)
}

// WithinTransaction implements unitofwork.Transactor.
func (t *Database) WithinTransaction(ctx context.Context, opts unitofwork.Options, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	}, &sql.TxOptions{ReadOnly: opts.ReadOnly})
}
