package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoStores ensures indexes and returns the MongoDB-backed repositories.
func NewMongoStores(ctx context.Context, client *mongo.Client, db *mongo.Database) (*Stores, error) {
	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return &Stores{
		Properties:       NewMongoPropertyRepository(db),
		Inquiries:        NewMongoInquiryRepository(db),
		GeneralInquiries: NewMongoGeneralInquiryRepository(db),
		Users:            NewMongoUserRepository(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Close: client.Disconnect,
	}, nil
}

// EnsureIndexes creates the query indexes used by list filters and stats.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		propertiesCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "address.area", Value: 1}}},
			{Keys: bson.D{{Key: "propertyType", Value: 1}}},
			{Keys: bson.D{{Key: "transactionType", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
		},
		inquiriesCollection: {
			{Keys: bson.D{{Key: "property", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		generalInquiriesCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}
	return nil
}
