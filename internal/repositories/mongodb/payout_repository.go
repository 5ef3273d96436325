package mongodb

import (
	"context"
	"fmt"
	"time"

	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type payoutRepository struct {
	collection *mongo.Collection
}

func NewPayoutRepository(db *mongo.Database) interfaces.PayoutRepository {
	return &payoutRepository{
		collection: db.Collection("referral_payouts"),
	}
}

func (r *payoutRepository) Create(ctx context.Context, payout *models.ReferralPayout) error {
	if payout.ID.IsZero() {
		payout.ID = primitive.NewObjectID()
	}
	payout.CreatedAt = time.Now()
	payout.UpdatedAt = time.Now()

	if payout.Status == "" {
		payout.Status = models.PayoutStatusProcessing
	}

	_, err := r.collection.InsertOne(ctx, payout)
	if err != nil {
		return fmt.Errorf("failed to create payout: %w", err)
	}

	return nil
}

func (r *payoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralPayout, error) {
	var payout models.ReferralPayout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payout)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payout: %w", err)
	}

	return &payout, nil
}

func (r *payoutRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update payout: %w", err)
	}

	return nil
}

func (r *payoutRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error) {
	return r.findWithFilter(ctx, bson.M{"user_id": userID}, params)
}

func (r *payoutRepository) ListByProgram(ctx context.Context, programID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error) {
	return r.findWithFilter(ctx, bson.M{"program_id": programID}, params)
}

func (r *payoutRepository) GetByStatus(ctx context.Context, status models.PayoutStatus, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error) {
	return r.findWithFilter(ctx, bson.M{"status": status}, params)
}

func (r *payoutRepository) SumCompletedByUser(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID) (float64, error) {
	match := bson.M{
		"user_id": userID,
		"status":  models.PayoutStatusCompleted,
	}
	if programID != nil {
		match["program_id"] = *programID
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum payouts: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode payout sum: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Total, nil
}

func (r *payoutRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payouts: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payouts: %w", err)
	}
	defer cursor.Close(ctx)

	var payouts []*models.ReferralPayout
	if err := cursor.All(ctx, &payouts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode payouts: %w", err)
	}

	return payouts, total, nil
}
