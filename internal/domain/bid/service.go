package bid

import (
	"context"

	"gigflow/internal/domain/gig"
	"gigflow/internal/domain/notification"
	"gigflow/internal/domain/user"
	"gigflow/internal/logger"
	"gigflow/internal/pkg/apperr"
	"gigflow/internal/pkg/validator"
)

type Service struct {
	bids     Store
	gigs     GigReader
	users    user.Directory
	notifier BidNotifier
	maxBids  int
}

func NewService(bids Store, gigs GigReader, users user.Directory, notifier BidNotifier, maxBidsPerFreelancer int) *Service {
	return &Service{
		bids:     bids,
		gigs:     gigs,
		users:    users,
		notifier: notifier,
		maxBids:  maxBidsPerFreelancer,
	}
}

// Create submits a bid. Checks run in a fixed order so the first failing
// rule decides the error.
func (s *Service) Create(ctx context.Context, freelancerID string, req CreateBidRequest) (*Bid, error) {
	req.normalize()
	if err := validator.Struct(&req); err != nil {
		return nil, apperr.Wrap(ErrValidation, err)
	}

	g, err := s.gigs.GetByID(ctx, req.GigID)
	if err != nil {
		return nil, err
	}
	if !g.IsOpen() {
		return nil, ErrGigNotOpen
	}
	if g.OwnerID == freelancerID {
		return nil, ErrSelfBid
	}

	exists, err := s.bids.ExistsForGigAndFreelancer(ctx, g.ID, freelancerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBid
	}

	n, err := s.bids.CountByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, err
	}
	if s.maxBids > 0 && n >= int64(s.maxBids) {
		return nil, ErrBidLimitReached
	}

	b := &Bid{
		GigID:        g.ID,
		FreelancerID: freelancerID,
		Message:      req.Message,
		Price:        *req.Price,
		Status:       StatusPending,
	}
	if err := s.bids.Create(ctx, b); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("bid submitted", "bid_id", b.ID, "gig_id", g.ID, "freelancer_id", freelancerID)

	s.populate(ctx, []*Bid{b})
	if s.notifier != nil {
		name := "a freelancer"
		if b.Freelancer != nil && b.Freelancer.Name != "" {
			name = b.Freelancer.Name
		}
		s.notifier.NotifyBidReceived(ctx, notification.BidReceived{
			OwnerID:        g.OwnerID,
			GigID:          g.ID,
			GigTitle:       g.Title,
			BidID:          b.ID,
			FreelancerID:   freelancerID,
			FreelancerName: name,
			Price:          b.Price,
		})
	}
	return b, nil
}

// ListForGig returns all bids on a gig. Only the owner may see them.
func (s *Service) ListForGig(ctx context.Context, requesterID, gigID string) ([]Bid, error) {
	g, err := s.gigs.GetByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != requesterID {
		return nil, ErrNotGigOwner
	}

	rows, err := s.bids.ListByGig(ctx, gigID)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*Bid, len(rows))
	for i := range rows {
		ptrs[i] = &rows[i]
	}
	s.populate(ctx, ptrs)
	return rows, nil
}

// ListActiveGigs returns every gig the freelancer has bid on, newest bid first.
func (s *Service) ListActiveGigs(ctx context.Context, freelancerID string) ([]ActiveGig, error) {
	bids, err := s.bids.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return []ActiveGig{}, nil
	}

	ids := make([]string, 0, len(bids))
	for _, b := range bids {
		ids = append(ids, b.GigID)
	}
	gigs, err := s.gigs.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]gig.Gig, len(gigs))
	for _, g := range gigs {
		byID[g.ID] = g
	}

	out := make([]ActiveGig, 0, len(bids))
	for i := range bids {
		g, ok := byID[bids[i].GigID]
		if !ok {
			continue
		}
		out = append(out, ActiveGig{Gig: g, Bid: bids[i].Summary()})
	}
	return out, nil
}

func (s *Service) populate(ctx context.Context, bids []*Bid) {
	if s.users == nil || len(bids) == 0 {
		return
	}
	ids := make([]string, 0, len(bids))
	for _, b := range bids {
		ids = append(ids, b.FreelancerID)
	}
	summaries, err := s.users.Summaries(ctx, ids)
	if err != nil {
		logger.FromContext(ctx).Warn("load freelancers failed", "error", err)
		return
	}
	for _, b := range bids {
		b.Freelancer = summaries[b.FreelancerID]
	}
}
