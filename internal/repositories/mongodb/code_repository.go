package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type codeRepository struct {
	collection *mongo.Collection
	cache      Cache
}

func NewCodeRepository(db *mongo.Database, cache Cache) interfaces.CodeRepository {
	return &codeRepository{
		collection: db.Collection("referral_codes"),
		cache:      cache,
	}
}

func (r *codeRepository) Create(ctx context.Context, code *models.ReferralCode) error {
	code.ID = primitive.NewObjectID()
	code.Code = strings.ToUpper(code.Code)
	code.CreatedAt = time.Now()
	code.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, code)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create referral code: %w", err)
	}

	return nil
}

func (r *codeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralCode, error) {
	var code models.ReferralCode
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get referral code: %w", err)
	}

	return &code, nil
}

func (r *codeRepository) GetByCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	code = strings.ToUpper(code)

	cacheKey := utils.CacheCodePrefix + code
	if r.cache != nil {
		var cached models.ReferralCode
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var result models.ReferralCode
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get referral code: %w", err)
	}

	// Cache the hot lookup on the click path. Counters in the cached copy
	// go stale within the TTL; reads that need exact counts use GetByID.
	if r.cache != nil && result.IsActive() {
		r.cache.Set(ctx, cacheKey, &result, 2*time.Minute)
	}

	return &result, nil
}

// GetByUserAndProgram backs the generate-code idempotency check.
// Disabled codes are invisible here so the user can be issued a fresh
// one; an active or pending code is returned as-is.
func (r *codeRepository) GetByUserAndProgram(ctx context.Context, userID, programID primitive.ObjectID) (*models.ReferralCode, error) {
	var code models.ReferralCode
	err := r.collection.FindOne(ctx, bson.M{
		"user_id":    userID,
		"program_id": programID,
		"status":     bson.M{"$ne": models.CodeStatusDisabled},
	}).Decode(&code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get referral code: %w", err)
	}

	return &code, nil
}

func (r *codeRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralCode, int64, error) {
	return r.findWithFilter(ctx, bson.M{"user_id": userID}, params)
}

func (r *codeRepository) ListByProgram(ctx context.Context, programID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralCode, int64, error) {
	return r.findWithFilter(ctx, bson.M{"program_id": programID}, params)
}

func (r *codeRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CodeStatus) error {
	code, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update code status: %w", err)
	}

	r.invalidate(ctx, code.Code)

	return nil
}

func (r *codeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"code": strings.ToUpper(code)})
	if err != nil {
		return false, fmt.Errorf("failed to check code existence: %w", err)
	}

	return count > 0, nil
}

func (r *codeRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count codes: %w", err)
	}

	return count, nil
}

func (r *codeRepository) IncrementClicks(ctx context.Context, id primitive.ObjectID, unique bool) error {
	inc := bson.M{"tracking.total_clicks": 1}
	if unique {
		inc["tracking.unique_clicks"] = 1
	}

	return r.increment(ctx, id, inc)
}

func (r *codeRepository) RecordReferral(ctx context.Context, id primitive.ObjectID) error {
	return r.increment(ctx, id, bson.M{"tracking.total_referrals": 1})
}

func (r *codeRepository) RecordConversion(ctx context.Context, id primitive.ObjectID, commission float64) error {
	if err := r.increment(ctx, id, bson.M{
		"tracking.successful_conversions": 1,
		"tracking.total_commission":       commission,
	}); err != nil {
		return err
	}

	return r.refreshConversionRate(ctx, id)
}

// ReverseConversion backs a cancelled conversion's credit out of the
// counters and recomputes the stored rate.
func (r *codeRepository) ReverseConversion(ctx context.Context, id primitive.ObjectID, commission float64) error {
	if err := r.increment(ctx, id, bson.M{
		"tracking.successful_conversions": -1,
		"tracking.total_commission":       -commission,
	}); err != nil {
		return err
	}

	return r.refreshConversionRate(ctx, id)
}

// refreshConversionRate recomputes the stored rate from the post-increment
// counters. The divisor floors at one so codes with zero unique clicks
// still get a defined rate.
func (r *codeRepository) refreshConversionRate(ctx context.Context, id primitive.ObjectID) error {
	var code models.ReferralCode
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&code)
	if err != nil {
		return fmt.Errorf("failed to reload code: %w", err)
	}

	divisor := code.Tracking.UniqueClicks
	if divisor < 1 {
		divisor = 1
	}
	rate := float64(code.Tracking.Conversions) / float64(divisor) * 100

	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"tracking.conversion_rate": rate}},
	)
	if err != nil {
		return fmt.Errorf("failed to update conversion rate: %w", err)
	}

	r.invalidate(ctx, code.Code)

	return nil
}

func (r *codeRepository) TopCodesByUser(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID, limit int) ([]*models.ReferralCode, error) {
	filter := bson.M{"user_id": userID}
	if programID != nil {
		filter["program_id"] = *programID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "tracking.successful_conversions", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find top codes: %w", err)
	}
	defer cursor.Close(ctx)

	var codes []*models.ReferralCode
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, fmt.Errorf("failed to decode codes: %w", err)
	}

	return codes, nil
}

// TotalsByUser folds the user's codes into one tracking summary,
// optionally scoped to a single program.
func (r *codeRepository) TotalsByUser(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID) (models.CodeTracking, error) {
	match := bson.M{"user_id": userID}
	if programID != nil {
		match["program_id"] = *programID
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":                    nil,
			"total_clicks":           bson.M{"$sum": "$tracking.total_clicks"},
			"unique_clicks":          bson.M{"$sum": "$tracking.unique_clicks"},
			"total_referrals":        bson.M{"$sum": "$tracking.total_referrals"},
			"successful_conversions": bson.M{"$sum": "$tracking.successful_conversions"},
			"total_commission":       bson.M{"$sum": "$tracking.total_commission"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.CodeTracking{}, fmt.Errorf("failed to aggregate code totals: %w", err)
	}
	defer cursor.Close(ctx)

	var totals []models.CodeTracking
	if err := cursor.All(ctx, &totals); err != nil {
		return models.CodeTracking{}, fmt.Errorf("failed to decode code totals: %w", err)
	}

	if len(totals) == 0 {
		return models.CodeTracking{}, nil
	}

	return totals[0], nil
}

func (r *codeRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.ReferralCode, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count codes: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list codes: %w", err)
	}
	defer cursor.Close(ctx)

	var codes []*models.ReferralCode
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, 0, fmt.Errorf("failed to decode codes: %w", err)
	}

	return codes, total, nil
}

func (r *codeRepository) increment(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	now := time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": fields,
			"$set": bson.M{
				"tracking.last_used_at": now,
				"updated_at":            now,
			},
		},
	)
	if result.Err() != nil {
		return fmt.Errorf("failed to increment code counters: %w", result.Err())
	}

	var code models.ReferralCode
	if err := result.Decode(&code); err == nil {
		r.invalidate(ctx, code.Code)
	}

	return nil
}

func (r *codeRepository) invalidate(ctx context.Context, code string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheCodePrefix+strings.ToUpper(code))
	}
}
