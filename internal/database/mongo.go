package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gigflow/internal/logger"
)

// ConnectMongo connects to uri and verifies the primary is reachable.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	logger.Info("connecting to MongoDB", "uri", redact(uri))

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("database: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: mongo ping: %w", err)
	}
	return client, nil
}

// ProbeMongoTransactions runs an empty read inside a transaction. Standalone
// servers reject transactions with IllegalOperation, which answers false.
func ProbeMongoTransactions(ctx context.Context, client *mongo.Client, dbName string) (bool, error) {
	sess, err := client.StartSession()
	if err != nil {
		if IsTransactionUnsupported(err) {
			return false, nil
		}
		return false, err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return client.Database(dbName).Collection("gigs").CountDocuments(sc, bson.D{})
	})
	if err == nil {
		return true, nil
	}
	if IsTransactionUnsupported(err) {
		return false, nil
	}
	return false, err
}
