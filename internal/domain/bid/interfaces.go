package bid

import (
	"context"

	"gigflow/internal/domain/gig"
	"gigflow/internal/domain/notification"
)

// Store is implemented by Repository (GORM) and MongoRepository.
type Store interface {
	Create(ctx context.Context, b *Bid) error
	GetByID(ctx context.Context, id string) (*Bid, error)
	ListByGig(ctx context.Context, gigID string) ([]Bid, error)
	ListByFreelancer(ctx context.Context, freelancerID string) ([]Bid, error)
	ExistsForGigAndFreelancer(ctx context.Context, gigID, freelancerID string) (bool, error)
	CountByFreelancer(ctx context.Context, freelancerID string) (int64, error)
	CountByFreelancerAndStatus(ctx context.Context, freelancerID string, status Status) (int64, error)

	// TryHire moves the bid to hired only if it belongs to gigID and its
	// status equals expected. It returns nil, nil when the guard failed.
	TryHire(ctx context.Context, bidID, gigID string, expected Status) (*Bid, error)
	// RejectSiblings rejects every pending bid on gigID except excludeBidID
	// and returns how many were modified.
	RejectSiblings(ctx context.Context, gigID, excludeBidID string) (int64, error)
}

// GigReader is the part of the gig store bid flows read from.
type GigReader interface {
	GetByID(ctx context.Context, id string) (*gig.Gig, error)
	ListByIDs(ctx context.Context, ids []string) ([]gig.Gig, error)
}

type BidNotifier interface {
	NotifyBidReceived(ctx context.Context, e notification.BidReceived)
}
