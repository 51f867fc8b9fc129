package gig

import (
	"context"

	"gigflow/internal/domain/user"
	"gigflow/internal/logger"
	"gigflow/internal/pkg/apperr"
	"gigflow/internal/pkg/validator"
)

type Service struct {
	gigs    Store
	users   user.Directory
	maxGigs int
}

func NewService(gigs Store, users user.Directory, maxGigsPerOwner int) *Service {
	return &Service{gigs: gigs, users: users, maxGigs: maxGigsPerOwner}
}

// Create posts a new open gig for ownerID. The per-owner limit is a
// check-then-create and may be overshot by concurrent requests.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateGigRequest) (*Gig, error) {
	req.normalize()
	if err := validator.Struct(&req); err != nil {
		return nil, apperr.Wrap(ErrValidation, err)
	}

	n, err := s.gigs.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if s.maxGigs > 0 && n >= int64(s.maxGigs) {
		return nil, ErrGigLimitReached
	}

	g := &Gig{
		Title:       req.Title,
		Description: req.Description,
		Budget:      *req.Budget,
		OwnerID:     ownerID,
		Status:      StatusOpen,
	}
	if err := s.gigs.Create(ctx, g); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("gig created", "gig_id", g.ID, "owner_id", ownerID)
	s.populate(ctx, []*Gig{g})
	return g, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Gig, error) {
	g, err := s.gigs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populate(ctx, []*Gig{g})
	return g, nil
}

func (s *Service) ListOpen(ctx context.Context, search string) ([]Gig, error) {
	rows, err := s.gigs.ListOpen(ctx, Filter{Search: search})
	if err != nil {
		return nil, err
	}
	s.populateSlice(ctx, rows)
	return rows, nil
}

func (s *Service) ListMine(ctx context.Context, ownerID string) ([]Gig, error) {
	rows, err := s.gigs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.populateSlice(ctx, rows)
	return rows, nil
}

func (s *Service) populateSlice(ctx context.Context, rows []Gig) {
	ptrs := make([]*Gig, len(rows))
	for i := range rows {
		ptrs[i] = &rows[i]
	}
	s.populate(ctx, ptrs)
}

// populate attaches owner summaries. A directory failure leaves Owner nil.
func (s *Service) populate(ctx context.Context, gigs []*Gig) {
	if s.users == nil || len(gigs) == 0 {
		return
	}
	ids := make([]string, 0, len(gigs))
	for _, g := range gigs {
		ids = append(ids, g.OwnerID)
	}
	owners, err := s.users.Summaries(ctx, ids)
	if err != nil {
		logger.FromContext(ctx).Warn("load gig owners failed", "error", err)
		return
	}
	for _, g := range gigs {
		g.Owner = owners[g.OwnerID]
	}
}
