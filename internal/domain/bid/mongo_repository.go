package bid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gigflow/internal/database"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection("bids")}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "gig_id", Value: 1}, {Key: "freelancer_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "gig_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "freelancer_id", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}

func (r *MongoRepository) Create(ctx context.Context, b *Bid) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateBid
		}
		return fmt.Errorf("bid: create: %w", err)
	}
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Bid, error) {
	var b Bid
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("bid: get: %w", err)
	}
	return &b, nil
}

func (r *MongoRepository) ListByGig(ctx context.Context, gigID string) ([]Bid, error) {
	return r.find(ctx, bson.M{"gig_id": gigID}, "list by gig")
}

func (r *MongoRepository) ListByFreelancer(ctx context.Context, freelancerID string) ([]Bid, error) {
	return r.find(ctx, bson.M{"freelancer_id": freelancerID}, "list by freelancer")
}

func (r *MongoRepository) ExistsForGigAndFreelancer(ctx context.Context, gigID, freelancerID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx,
		bson.M{"gig_id": gigID, "freelancer_id": freelancerID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("bid: exists: %w", err)
	}
	return n > 0, nil
}

func (r *MongoRepository) CountByFreelancer(ctx context.Context, freelancerID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"freelancer_id": freelancerID})
	if err != nil {
		return 0, fmt.Errorf("bid: count: %w", err)
	}
	return n, nil
}

func (r *MongoRepository) CountByFreelancerAndStatus(ctx context.Context, freelancerID string, status Status) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"freelancer_id": freelancerID, "status": status})
	if err != nil {
		return 0, fmt.Errorf("bid: count by status: %w", err)
	}
	return n, nil
}

func (r *MongoRepository) TryHire(ctx context.Context, bidID, gigID string, expected Status) (*Bid, error) {
	var b Bid
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": bidID, "gig_id": gigID, "status": expected},
		bson.M{"$set": bson.M{"status": StatusHired, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("bid: try hire: %w", err)
	}
	return &b, nil
}

func (r *MongoRepository) RejectSiblings(ctx context.Context, gigID, excludeBidID string) (int64, error) {
	now := time.Now().UTC()
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"gig_id": gigID, "_id": bson.M{"$ne": excludeBidID}, "status": StatusPending},
		bson.M{"$set": bson.M{"status": StatusRejected, "rejected_at": now, "updated_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("bid: reject siblings: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, op string) ([]Bid, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("bid: %s: %w", op, err)
	}
	rows := []Bid{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("bid: %s: %w", op, err)
	}
	return rows, nil
}
