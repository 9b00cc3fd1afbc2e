// Package unitofwork defines the transactional boundary every service operation runs in.
package unitofwork

import "context"

// Options controls how a transaction is opened.
type Options struct {
	ReadOnly bool
}

var (
	// ReadOnly is used by lookups and listings.
	ReadOnly = Options{ReadOnly: true}
	// ReadWrite is used by every mutating operation.
	ReadWrite = Options{}
)

// Transactor runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back on error or panic. Calls made with a context that
// already carries a transaction join it.
type Transactor interface {
	WithinTransaction(ctx context.Context, opts Options, fn func(ctx context.Context) error) error
}
