package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the referral engine relies on. The unique
// index on referral_codes.code is what makes code generation race-free: an
// insert that loses a race fails with a duplicate key error instead of
// silently creating a second code.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		"referral_programs": {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "workspace_id", Value: 1}}},
		},
		"referral_codes": {
			{
				Keys:    bson.D{{Key: "code", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "program_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		"referral_clicks": {
			{Keys: bson.D{{Key: "code_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "visitor.ip_address", Value: 1}, {Key: "code_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"referral_conversions": {
			{Keys: bson.D{{Key: "code_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "referrer_id", Value: 1}, {Key: "program_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		"referral_payouts": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "program_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		_, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}

	return nil
}
