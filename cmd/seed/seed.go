package main

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"

	"gigflow/internal/app"
	"gigflow/internal/config"
	"gigflow/internal/domain/bid"
	"gigflow/internal/domain/gig"
	"gigflow/internal/domain/user"
	"gigflow/internal/logger"
	jwtsvc "gigflow/internal/pkg/jwt"
)

var demoUsers = []struct{ Name, Email string }{
	{"Olivia Carter", "olivia@gigflow.dev"},
	{"Jane Doe", "jane@gigflow.dev"},
	{"Bob Smith", "bob@gigflow.dev"},
	{"Sam Lee", "sam@gigflow.dev"},
}

var demoGigs = []struct {
	Title, Description string
	Budget             float64
}{
	{"Landing page for a coffee shop", "Responsive one-page site with a menu section and contact form.", 450},
	{"Logo redesign", "Modernise an existing logo. Vector deliverables required.", 200},
	{"REST API in Go", "CRUD API with PostgreSQL, JWT auth and tests.", 1200},
}

func run(ctx context.Context, cfg *config.Config, opts *options, out io.Writer) error {
	b, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close(context.WithoutCancel(ctx))

	return seed(ctx, b, cfg, opts, out)
}

func seed(ctx context.Context, b *app.Backend, cfg *config.Config, opts *options, out io.Writer) error {
	if opts.Reset {
		logger.Info("cleaning old data")
		if err := b.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := make([]*user.User, 0, len(demoUsers))
	for _, d := range demoUsers {
		u := &user.User{Name: d.Name, Email: d.Email, PasswordHash: string(hash)}
		if err := b.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user %s: %w", d.Email, err)
		}
		users = append(users, u)
	}
	owner := users[0]
	logger.Info("users created", "count", len(users))

	gigs := make([]*gig.Gig, 0, len(demoGigs))
	for _, d := range demoGigs {
		g := &gig.Gig{
			Title:       d.Title,
			Description: d.Description,
			Budget:      d.Budget,
			OwnerID:     owner.ID,
			Status:      gig.StatusOpen,
		}
		if err := b.Gigs.Create(ctx, g); err != nil {
			return fmt.Errorf("create gig: %w", err)
		}
		gigs = append(gigs, g)
	}
	logger.Info("gigs created", "count", len(gigs))

	// every freelancer bids on the first gig so a hire has siblings to reject
	bids := 0
	for i, f := range users[1:] {
		bd := &bid.Bid{
			GigID:        gigs[0].ID,
			FreelancerID: f.ID,
			Message:      fmt.Sprintf("Hi, I'm %s and I'd love to work on this.", f.Name),
			Price:        gigs[0].Budget - float64(25*(i+1)),
			Status:       bid.StatusPending,
		}
		if err := b.Bids.Create(ctx, bd); err != nil {
			return fmt.Errorf("create bid: %w", err)
		}
		bids++
	}
	logger.Info("bids created", "count", bids)

	fmt.Fprintf(out, "seeded %d users, %d gigs, %d bids (password: %s)\n", len(users), len(gigs), bids, opts.Password)

	if opts.Tokens {
		j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
		for _, u := range users {
			token, err := j.GenerateToken(u.ID)
			if err != nil {
				return fmt.Errorf("token for %s: %w", u.Email, err)
			}
			fmt.Fprintf(out, "%-22s %s\n", u.Email, token)
		}
	}
	return nil
}
