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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type conversionRepository struct {
	collection *mongo.Collection
}

func NewConversionRepository(db *mongo.Database) interfaces.ConversionRepository {
	return &conversionRepository{
		collection: db.Collection("referral_conversions"),
	}
}

func (r *conversionRepository) Create(ctx context.Context, conversion *models.ReferralConversion) error {
	conversion.ID = primitive.NewObjectID()
	conversion.CreatedAt = time.Now()
	conversion.UpdatedAt = time.Now()

	if conversion.Status == "" {
		conversion.Status = models.ConversionStatusPending
	}

	_, err := r.collection.InsertOne(ctx, conversion)
	if err != nil {
		return fmt.Errorf("failed to create conversion: %w", err)
	}

	return nil
}

func (r *conversionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralConversion, error) {
	var conversion models.ReferralConversion
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&conversion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversion: %w", err)
	}

	return &conversion, nil
}

func (r *conversionRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update conversion: %w", err)
	}

	return nil
}

func (r *conversionRepository) ListByReferrer(ctx context.Context, referrerID primitive.ObjectID, status models.ConversionStatus, params *utils.PaginationParams) ([]*models.ReferralConversion, int64, error) {
	filter := bson.M{"referrer_id": referrerID}
	if status != "" {
		filter["status"] = status
	}

	return r.findWithFilter(ctx, filter, params)
}

func (r *conversionRepository) ListByProgram(ctx context.Context, programID primitive.ObjectID, status models.ConversionStatus, params *utils.PaginationParams) ([]*models.ReferralConversion, int64, error) {
	filter := bson.M{"program_id": programID}
	if status != "" {
		filter["status"] = status
	}

	return r.findWithFilter(ctx, filter, params)
}

func (r *conversionRepository) GetEligibleForPayout(ctx context.Context, referrerID, programID primitive.ObjectID, approvedBefore time.Time) ([]*models.ReferralConversion, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"referrer_id": referrerID,
		"program_id":  programID,
		"status":      models.ConversionStatusApproved,
		"approved_at": bson.M{"$lte": approvedBefore},
		"payout_id":   bson.M{"$exists": false},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find eligible conversions: %w", err)
	}
	defer cursor.Close(ctx)

	var conversions []*models.ReferralConversion
	if err := cursor.All(ctx, &conversions); err != nil {
		return nil, fmt.Errorf("failed to decode conversions: %w", err)
	}

	return conversions, nil
}

// MarkPaid flips the whole batch to paid and links it to the payout. Run
// inside a session so a provider failure rolls the linking back.
func (r *conversionRepository) MarkPaid(ctx context.Context, ids []primitive.ObjectID, payoutID primitive.ObjectID) error {
	now := time.Now()

	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{
			"_id":    bson.M{"$in": ids},
			"status": models.ConversionStatusApproved,
		},
		bson.M{"$set": bson.M{
			"status":     models.ConversionStatusPaid,
			"payout_id":  payoutID,
			"paid_at":    now,
			"updated_at": now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark conversions paid: %w", err)
	}

	if result.ModifiedCount != int64(len(ids)) {
		return fmt.Errorf("expected to mark %d conversions paid, marked %d", len(ids), result.ModifiedCount)
	}

	return nil
}

func (r *conversionRepository) CountByReferrer(ctx context.Context, referrerID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"referrer_id": referrerID,
		"status":      bson.M{"$ne": models.ConversionStatusCancelled},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count conversions by referrer: %w", err)
	}

	return count, nil
}

func (r *conversionRepository) SumCommissionByStatus(ctx context.Context, referrerID primitive.ObjectID, programID *primitive.ObjectID, status models.ConversionStatus) (float64, error) {
	match := bson.M{
		"referrer_id": referrerID,
		"status":      status,
	}
	if programID != nil {
		match["program_id"] = *programID
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$commission.total"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum commission: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode commission sum: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Total, nil
}

func (r *conversionRepository) CountByReferredUserSince(ctx context.Context, referredUser primitive.ObjectID, programID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"referred_user_id": referredUser,
		"program_id":       programID,
		"status":           bson.M{"$ne": models.ConversionStatusCancelled},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count conversions by referred user: %w", err)
	}

	return count, nil
}

func (r *conversionRepository) RecentByReferrer(ctx context.Context, referrerID primitive.ObjectID, programID *primitive.ObjectID, limit int) ([]*models.ReferralConversion, error) {
	filter := bson.M{"referrer_id": referrerID}
	if programID != nil {
		filter["program_id"] = *programID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent conversions: %w", err)
	}
	defer cursor.Close(ctx)

	var conversions []*models.ReferralConversion
	if err := cursor.All(ctx, &conversions); err != nil {
		return nil, fmt.Errorf("failed to decode conversions: %w", err)
	}

	return conversions, nil
}

func (r *conversionRepository) MonthlyBreakdown(ctx context.Context, referrerID primitive.ObjectID, programID *primitive.ObjectID, months int) ([]models.MonthlyStats, error) {
	match := bson.M{"referrer_id": referrerID}
	if programID != nil {
		match["program_id"] = *programID
	}
	return r.monthlyAggregate(ctx, match, months)
}

func (r *conversionRepository) MonthlyVolumeByProgram(ctx context.Context, programID primitive.ObjectID, months int) ([]models.MonthlyStats, error) {
	return r.monthlyAggregate(ctx, bson.M{"program_id": programID}, months)
}

func (r *conversionRepository) monthlyAggregate(ctx context.Context, match bson.M, months int) ([]models.MonthlyStats, error) {
	match["created_at"] = bson.M{"$gte": utils.StartOfMonth(time.Now().AddDate(0, -(months - 1), 0))}
	match["status"] = bson.M{"$ne": models.ConversionStatusCancelled}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date":   "$created_at",
			}},
			"conversions": bson.M{"$sum": 1},
			"commission":  bson.M{"$sum": "$commission.total"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []models.MonthlyStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode monthly stats: %w", err)
	}

	return stats, nil
}

func (r *conversionRepository) TopReferrersByProgram(ctx context.Context, programID primitive.ObjectID, limit int) ([]models.ReferrerStats, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"program_id": programID,
			"status":     bson.M{"$ne": models.ConversionStatusCancelled},
		}},
		{"$group": bson.M{
			"_id":         "$referrer_id",
			"conversions": bson.M{"$sum": 1},
			"commission":  bson.M{"$sum": "$commission.total"},
		}},
		{"$sort": bson.M{"commission": -1}},
		{"$limit": limit},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top referrers: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []models.ReferrerStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode referrer stats: %w", err)
	}

	return stats, nil
}

func (r *conversionRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.ReferralConversion, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count conversions: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list conversions: %w", err)
	}
	defer cursor.Close(ctx)

	var conversions []*models.ReferralConversion
	if err := cursor.All(ctx, &conversions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode conversions: %w", err)
	}

	return conversions, total, nil
}
