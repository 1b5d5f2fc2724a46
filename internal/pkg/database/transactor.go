package database

import "context"

// Transactor groups repository calls into one unit of work. Repositories called
// with the ctx passed to fn join the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
