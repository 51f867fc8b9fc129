package hire

import (
	"context"
	"errors"
	"time"

	"gigflow/internal/database"
	"gigflow/internal/domain/bid"
	"gigflow/internal/domain/gig"
	"gigflow/internal/domain/notification"
	"gigflow/internal/domain/user"
	"gigflow/internal/logger"
)

const defaultFinalizeTimeout = 10 * time.Second

type Config struct {
	MaxActiveHires  int
	FinalizeTimeout time.Duration
}

// Result is the outcome of a successful hire.
type Result struct {
	Bid           *bid.Bid `json:"bid"`
	Gig           *gig.Gig `json:"gig"`
	RejectedCount int64    `json:"rejectedBidsCount"`
}

// Service coordinates the hire transition: gig open to assigned, bid pending
// to hired, then sibling rejection and notifications. Correctness rests on
// conditional single-document writes; a transaction, when available, makes
// the two writes atomic.
type Service struct {
	tx       Transactor
	users    user.Directory
	notifier Notifier
	cfg      Config
}

func NewService(tx Transactor, users user.Directory, notifier Notifier, cfg Config) *Service {
	if cfg.FinalizeTimeout <= 0 {
		cfg.FinalizeTimeout = defaultFinalizeTimeout
	}
	return &Service{tx: tx, users: users, notifier: notifier, cfg: cfg}
}

func (s *Service) Hire(ctx context.Context, requesterID, bidID string) (*Result, error) {
	log := logger.FromContext(ctx).With("bid_id", bidID)
	st := s.tx.Stores()

	b, err := st.Bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	g, err := st.Gigs.GetByID(ctx, b.GigID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != requesterID {
		return nil, ErrNotGigOwner
	}
	// Status pre-checks answer 409 before the capacity check so a retry after a
	// lost race never reports capacity. The conditional writes still decide.
	if !g.IsOpen() {
		return nil, ErrGigAlreadyAssigned
	}
	if b.Status != bid.StatusPending {
		return nil, ErrBidAlreadyProcessed
	}

	// Advisory: concurrent hires of the same freelancer on different gigs can
	// both pass this check.
	if s.cfg.MaxActiveHires > 0 {
		n, err := st.Bids.CountByFreelancerAndStatus(ctx, b.FreelancerID, bid.StatusHired)
		if err != nil {
			return nil, err
		}
		if n >= int64(s.cfg.MaxActiveHires) {
			return nil, ErrCapacityExceeded
		}
	}

	assigned, hired, err := s.commit(ctx, g.ID, b.ID)
	if err != nil {
		if errors.Is(err, ErrGigAlreadyAssigned) || errors.Is(err, ErrBidAlreadyProcessed) {
			log.Info("hire lost race", "gig_id", g.ID, "error", err)
		}
		return nil, err
	}

	// The hire is committed; finish even if the caller goes away.
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.FinalizeTimeout)
	defer cancel()

	rejected, err := st.Bids.RejectSiblings(fctx, g.ID, b.ID)
	if err != nil {
		log.Error("reject sibling bids failed", "gig_id", g.ID, "error", err)
	}

	s.populate(fctx, hired)
	s.notify(fctx, assigned, hired)

	log.Info("freelancer hired",
		"gig_id", g.ID,
		"freelancer_id", hired.FreelancerID,
		"rejected", rejected,
		"transactional", s.tx.SupportsTransactions(),
	)
	return &Result{Bid: hired, Gig: assigned, RejectedCount: rejected}, nil
}

// commit runs the two conditional writes, inside a transaction when the
// backend supports one. A transaction-unsupported failure disables
// transactions and retries once without.
func (s *Service) commit(ctx context.Context, gigID, bidID string) (*gig.Gig, *bid.Bid, error) {
	if s.tx.SupportsTransactions() {
		var (
			g *gig.Gig
			b *bid.Bid
		)
		err := s.tx.InTransaction(ctx, func(tctx context.Context, st Stores) error {
			var err error
			g, b, err = s.transition(tctx, st, gigID, bidID, false)
			return err
		})
		if err == nil {
			return g, b, nil
		}
		if !database.IsTransactionUnsupported(err) {
			return nil, nil, err
		}

		logger.FromContext(ctx).Warn("transactions unsupported, switching to compensation mode", "error", err)
		s.tx.DisableTransactions()
	}
	return s.transition(ctx, s.tx.Stores(), gigID, bidID, true)
}

// transition assigns the gig then hires the bid. With compensate set there is
// no transaction to roll back, so a failed bid write reopens the gig, and the
// writes run on a context detached from the caller so cancellation cannot
// strand an assigned gig.
func (s *Service) transition(ctx context.Context, st Stores, gigID, bidID string, compensate bool) (*gig.Gig, *bid.Bid, error) {
	if compensate {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), s.cfg.FinalizeTimeout)
		defer cancel()
	}

	g, err := st.Gigs.TryAssign(ctx, gigID, gig.StatusOpen)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, ErrGigAlreadyAssigned
	}

	b, err := st.Bids.TryHire(ctx, bidID, gigID, bid.StatusPending)
	if err == nil && b != nil {
		return g, b, nil
	}

	if compensate {
		if rerr := st.Gigs.Reopen(ctx, gigID); rerr != nil {
			logger.FromContext(ctx).Error("reopen gig after failed hire", "gig_id", gigID, "error", rerr)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	return nil, nil, ErrBidAlreadyProcessed
}

func (s *Service) populate(ctx context.Context, b *bid.Bid) {
	if s.users == nil {
		return
	}
	summaries, err := s.users.Summaries(ctx, []string{b.FreelancerID})
	if err != nil {
		logger.FromContext(ctx).Warn("load freelancer failed", "freelancer_id", b.FreelancerID, "error", err)
		return
	}
	b.Freelancer = summaries[b.FreelancerID]
}

func (s *Service) notify(ctx context.Context, g *gig.Gig, b *bid.Bid) {
	if s.notifier == nil {
		return
	}
	name := "a freelancer"
	if b.Freelancer != nil && b.Freelancer.Name != "" {
		name = b.Freelancer.Name
	}
	s.notifier.NotifyHired(ctx, notification.Hired{
		OwnerID:        g.OwnerID,
		FreelancerID:   b.FreelancerID,
		FreelancerName: name,
		GigID:          g.ID,
		GigTitle:       g.Title,
		BidID:          b.ID,
	})
}
