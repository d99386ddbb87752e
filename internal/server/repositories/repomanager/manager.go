package repomanager

import (
	"context"

	"github.com/dmitrijs2005/letshang/internal/server/repositories/attendees"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/hangs"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/suggestions"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/users"
)

// TxFunc receives a manager whose repositories all share one transaction.
type TxFunc func(ctx context.Context, m RepositoryManager) error

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error

	Users() users.Repository
	Hangs() hangs.Repository
	Attendees() attendees.Repository
	Suggestions() suggestions.Repository

	// WithTx commits when fn returns nil and rolls back otherwise.
	// Calling WithTx on a manager that is already transactional runs fn in
	// the enclosing transaction.
	WithTx(ctx context.Context, fn TxFunc) error
	// WithSnapshot runs read-only fn against a single point in time.
	WithSnapshot(ctx context.Context, fn TxFunc) error

	Close() error
}
