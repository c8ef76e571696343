package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"journey-map/model"
)

// IngestStore persists raw photo-location records arriving at the
// ingestion boundary.
type IngestStore interface {
	SaveRecord(ctx context.Context, rec model.IngestRecord) error
	SaveBatch(ctx context.Context, recs []model.IngestRecord) (inserted int, err error)
}

// MongoIngestStore is the MongoDB-backed ingestion store.
type MongoIngestStore struct {
	Log *zap.Logger

	mongoClient *mongo.Client
	collection  *mongo.Collection
}

// Connect dials MongoDB and selects the target collection.
func (db *MongoIngestStore) Connect(connectionString, databaseName, collectionName string) error {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	if err := client.Ping(context.TODO(), nil); err != nil {
		return err
	}

	db.mongoClient = client
	db.collection = client.Database(databaseName).Collection(collectionName)

	db.Log.Info("connected to MongoDB",
		zap.String("database", databaseName),
		zap.String("collection", collectionName),
	)
	return nil
}

func (db *MongoIngestStore) Close() error {
	if db.mongoClient != nil {
		if err := db.mongoClient.Disconnect(context.TODO()); err != nil {
			return err
		}
		db.Log.Info("disconnected from MongoDB")
	}
	return nil
}

func (db *MongoIngestStore) SaveRecord(ctx context.Context, rec model.IngestRecord) error {
	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = time.Now()
	}
	_, err := db.collection.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	db.Log.Info("ingest record saved", zap.String("username", rec.Username))
	return nil
}

func (db *MongoIngestStore) SaveBatch(ctx context.Context, recs []model.IngestRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	now := time.Now()
	docs := make([]any, len(recs))
	for i, rec := range recs {
		if rec.ReceivedAt.IsZero() {
			rec.ReceivedAt = now
		}
		docs[i] = rec
	}

	result, err := db.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	db.Log.Info("ingest batch saved", zap.Int("count", len(result.InsertedIDs)))
	return len(result.InsertedIDs), nil
}
