// Package app wires stores, services and the HTTP router for the API and
// the seed command.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"gigflow/internal/config"
	"gigflow/internal/database"
	"gigflow/internal/domain/bid"
	"gigflow/internal/domain/gig"
	"gigflow/internal/domain/hire"
	"gigflow/internal/domain/notification"
	"gigflow/internal/domain/user"
	"gigflow/internal/logger"
)

type UserStore interface {
	user.Directory
	Create(ctx context.Context, u *user.User) error
	DeleteAll(ctx context.Context) error
}

type GigStore interface {
	gig.Store
	DeleteAll(ctx context.Context) error
}

type BidStore interface {
	bid.Store
	DeleteAll(ctx context.Context) error
}

type NotificationStore interface {
	notification.Store
	DeleteAll(ctx context.Context) error
}

// Backend is one storage backend with every store bound to it.
type Backend struct {
	Name          string
	Users         UserStore
	Gigs          GigStore
	Bids          BidStore
	Notifications NotificationStore
	Transactor    hire.Transactor

	close func(ctx context.Context) error
}

func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Reset deletes all rows, children first.
func (b *Backend) Reset(ctx context.Context) error {
	return errors.Join(
		b.Notifications.DeleteAll(ctx),
		b.Bids.DeleteAll(ctx),
		b.Gigs.DeleteAll(ctx),
		b.Users.DeleteAll(ctx),
	)
}

// Open connects the backend selected by cfg.DatabaseURL, prepares its schema
// and decides whether hires run in transactions.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	if database.BackendFor(cfg.DatabaseURL) == database.BackendMongo {
		return openMongo(ctx, cfg)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	b, err := NewSQLBackend(ctx, db, cfg.TransactionMode)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	b.close = func(context.Context) error { return database.Close(db) }
	return b, nil
}

// NewSQLBackend migrates db and builds GORM stores over it.
func NewSQLBackend(ctx context.Context, db *gorm.DB, mode config.TransactionMode) (*Backend, error) {
	if err := database.Migrate(db, &user.User{}, &gig.Gig{}, &bid.Bid{}, &notification.Notification{}); err != nil {
		return nil, err
	}

	tx, err := resolveTransactions(ctx, mode, func(ctx context.Context) (bool, error) {
		return database.ProbeTransactions(ctx, db)
	})
	if err != nil {
		return nil, err
	}

	return &Backend{
		Name:          db.Dialector.Name(),
		Users:         user.NewRepository(db),
		Gigs:          gig.NewRepository(db),
		Bids:          bid.NewRepository(db),
		Notifications: notification.NewRepository(db),
		Transactor:    hire.NewGormTransactor(db, tx),
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*Backend, error) {
	client, err := database.ConnectMongo(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	b, err := NewMongoBackend(ctx, client, cfg.MongoDatabase, cfg.TransactionMode)
	if err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}
	b.close = client.Disconnect
	return b, nil
}

// NewMongoBackend ensures indexes and builds document stores on dbName.
func NewMongoBackend(ctx context.Context, client *mongo.Client, dbName string, mode config.TransactionMode) (*Backend, error) {
	db := client.Database(dbName)

	users := user.NewMongoRepository(db)
	gigs := gig.NewMongoRepository(db)
	bids := bid.NewMongoRepository(db)
	notifs := notification.NewMongoRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":         users.EnsureIndexes,
		"gigs":          gigs.EnsureIndexes,
		"bids":          bids.EnsureIndexes,
		"notifications": notifs.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return nil, fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}

	tx, err := resolveTransactions(ctx, mode, func(ctx context.Context) (bool, error) {
		return database.ProbeMongoTransactions(ctx, client, dbName)
	})
	if err != nil {
		return nil, err
	}

	return &Backend{
		Name:          string(database.BackendMongo),
		Users:         users,
		Gigs:          gigs,
		Bids:          bids,
		Notifications: notifs,
		Transactor:    hire.NewMongoTransactor(client, db, tx),
	}, nil
}

// resolveTransactions applies TRANSACTION_MODE. In auto mode a failed probe
// falls back to non-transactional hires rather than refusing to start.
func resolveTransactions(ctx context.Context, mode config.TransactionMode, probe func(context.Context) (bool, error)) (bool, error) {
	switch mode {
	case config.TransactionOn:
		return true, nil
	case config.TransactionOff:
		return false, nil
	case config.TransactionAuto, "":
		ok, err := probe(ctx)
		if err != nil {
			logger.Warn("transaction probe failed, hires will use compensation", "error", err)
			return false, nil
		}
		logger.Info("transaction probe finished", "transactions", ok)
		return ok, nil
	default:
		return false, fmt.Errorf("unknown transaction mode %q", mode)
	}
}
