package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManagerInterface runs order writes and their history rows as one unit.
type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type txStarter interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// TxManager opens read-committed transactions. Order rows are locked with
// SELECT ... FOR UPDATE inside fn, so a stricter level is not needed.
type TxManager struct {
	db   txStarter
	opts pgx.TxOptions
}

func NewTxManager(pool *pgxpool.Pool) TxManagerInterface {
	return newTxManager(pool)
}

func newTxManager(db txStarter) *TxManager {
	return &TxManager{db: db, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// RunInTransaction commits when fn returns nil. An error from fn, or a panic
// inside it, rolls back. fn's error is returned unwrapped so callers keep
// matching on their sentinels.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pgx.BeginTxFunc(ctx, m.db, m.opts, fn)
}
