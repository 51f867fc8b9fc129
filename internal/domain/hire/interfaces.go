package hire

import (
	"context"

	"gigflow/internal/domain/bid"
	"gigflow/internal/domain/gig"
	"gigflow/internal/domain/notification"
)

type GigStore interface {
	GetByID(ctx context.Context, id string) (*gig.Gig, error)
	TryAssign(ctx context.Context, id string, expected gig.Status) (*gig.Gig, error)
	Reopen(ctx context.Context, id string) error
}

type BidStore interface {
	GetByID(ctx context.Context, id string) (*bid.Bid, error)
	CountByFreelancerAndStatus(ctx context.Context, freelancerID string, status bid.Status) (int64, error)
	TryHire(ctx context.Context, bidID, gigID string, expected bid.Status) (*bid.Bid, error)
	RejectSiblings(ctx context.Context, gigID, excludeBidID string) (int64, error)
}

// Stores groups the stores a hire touches. Inside a transaction both are
// bound to it.
type Stores struct {
	Gigs GigStore
	Bids BidStore
}

// Transactor runs work inside a multi-document transaction when the backend
// supports it.
type Transactor interface {
	// Stores returns stores that are not bound to any transaction.
	Stores() Stores
	SupportsTransactions() bool
	// DisableTransactions switches the transactor to non-transactional mode
	// for the rest of the process lifetime.
	DisableTransactions()
	// InTransaction runs fn in a transaction, committing when it returns nil.
	InTransaction(ctx context.Context, fn func(ctx context.Context, st Stores) error) error
}

type Notifier interface {
	NotifyHired(ctx context.Context, e notification.Hired)
}
