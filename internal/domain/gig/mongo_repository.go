package gig

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "gigs"

// MongoRepository stores gigs as documents. Operations take the session
// context when they run inside a transaction.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "_id", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}

func (r *MongoRepository) Create(ctx context.Context, g *Gig) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Status == "" {
		g.Status = StatusOpen
	}
	now := time.Now().UTC()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, g); err != nil {
		return fmt.Errorf("gig: create: %w", err)
	}
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Gig, error) {
	var g Gig
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("gig: get: %w", err)
	}
	return &g, nil
}

func (r *MongoRepository) ListOpen(ctx context.Context, f Filter) ([]Gig, error) {
	filter := bson.M{"status": StatusOpen}
	if s := strings.TrimSpace(f.Search); s != "" {
		re := primitiveRegex(s)
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}
	}
	return r.find(ctx, filter, "list open")
}

func (r *MongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]Gig, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, "list by owner")
}

func (r *MongoRepository) ListByIDs(ctx context.Context, ids []string) ([]Gig, error) {
	if len(ids) == 0 {
		return []Gig{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, "list by ids")
}

func (r *MongoRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("gig: count by owner: %w", err)
	}
	return n, nil
}

func (r *MongoRepository) TryAssign(ctx context.Context, id string, expected Status) (*Gig, error) {
	now := time.Now().UTC()
	var g Gig
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": expected},
		bson.M{"$set": bson.M{"status": StatusAssigned, "assigned_at": now, "updated_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gig: try assign: %w", err)
	}
	return &g, nil
}

func (r *MongoRepository) Reopen(ctx context.Context, id string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": StatusAssigned},
		bson.M{
			"$set":   bson.M{"status": StatusOpen, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"assigned_at": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("gig: reopen: %w", err)
	}
	return nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, op string) ([]Gig, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("gig: %s: %w", op, err)
	}
	rows := []Gig{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("gig: %s: %w", op, err)
	}
	return rows, nil
}

func primitiveRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}
