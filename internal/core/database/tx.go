package database

import (
	"context"

	"gorm.io/gorm"
)

// Tx is the unit-of-work handle threaded through every repository call.
// The zero value is not usable outside of tests that never touch the store.
type Tx struct {
	db *gorm.DB
}

// NewTx wraps a gorm handle, usually one already inside a transaction.
func NewTx(db *gorm.DB) Tx {
	return Tx{db: db}
}

// DB returns the underlying handle bound to ctx.
func (t Tx) DB(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx)
}

// Transactor opens one database transaction per unit of work.
type Transactor struct {
	db *gorm.DB
}

// NewTransactor creates a Transactor over db.
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back when it returns an error or panics.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return t.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(ctx, NewTx(gtx))
	})
}

// Reader returns a handle for reads that need no transaction.
func (t *Transactor) Reader() Tx {
	return NewTx(t.db)
}
