package hire

import (
	"context"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"gigflow/internal/domain/bid"
	"gigflow/internal/domain/gig"
)

// GormTransactor runs hires on a SQL database through GORM.
type GormTransactor struct {
	db      *gorm.DB
	enabled atomic.Bool
}

func NewGormTransactor(db *gorm.DB, transactions bool) *GormTransactor {
	t := &GormTransactor{db: db}
	t.enabled.Store(transactions)
	return t
}

func (t *GormTransactor) Stores() Stores {
	return Stores{Gigs: gig.NewRepository(t.db), Bids: bid.NewRepository(t.db)}
}

func (t *GormTransactor) SupportsTransactions() bool { return t.enabled.Load() }

func (t *GormTransactor) DisableTransactions() { t.enabled.Store(false) }

func (t *GormTransactor) InTransaction(ctx context.Context, fn func(ctx context.Context, st Stores) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, Stores{Gigs: gig.NewRepository(tx), Bids: bid.NewRepository(tx)})
	})
}

// MongoTransactor runs hires on MongoDB. Transactions need a replica set or
// sharded cluster; standalone servers run in non-transactional mode.
type MongoTransactor struct {
	client  *mongo.Client
	db      *mongo.Database
	enabled atomic.Bool
}

func NewMongoTransactor(client *mongo.Client, db *mongo.Database, transactions bool) *MongoTransactor {
	t := &MongoTransactor{client: client, db: db}
	t.enabled.Store(transactions)
	return t
}

func (t *MongoTransactor) Stores() Stores {
	return Stores{Gigs: gig.NewMongoRepository(t.db), Bids: bid.NewMongoRepository(t.db)}
}

func (t *MongoTransactor) SupportsTransactions() bool { return t.enabled.Load() }

func (t *MongoTransactor) DisableTransactions() { t.enabled.Store(false) }

// InTransaction passes the session context to fn; store calls made with it
// join the transaction.
func (t *MongoTransactor) InTransaction(ctx context.Context, fn func(ctx context.Context, st Stores) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc, t.Stores())
	})
	return err
}
