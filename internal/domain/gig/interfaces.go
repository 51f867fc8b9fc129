package gig

import (
	"context"
)

// Store is the persistence contract for gigs, implemented by Repository
// (GORM) and MongoRepository.
type Store interface {
	Create(ctx context.Context, g *Gig) error
	GetByID(ctx context.Context, id string) (*Gig, error)
	ListOpen(ctx context.Context, f Filter) ([]Gig, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Gig, error)
	ListByIDs(ctx context.Context, ids []string) ([]Gig, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)

	// TryAssign moves the gig to assigned only if its status equals expected.
	// It returns nil, nil when the precondition did not hold.
	TryAssign(ctx context.Context, id string, expected Status) (*Gig, error)
	// Reopen reverts an assigned gig to open. Used as compensation.
	Reopen(ctx context.Context, id string) error
}
