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

type programRepository struct {
	collection *mongo.Collection
	cache      Cache
}

func NewProgramRepository(db *mongo.Database, cache Cache) interfaces.ProgramRepository {
	return &programRepository{
		collection: db.Collection("referral_programs"),
		cache:      cache,
	}
}

func (r *programRepository) Create(ctx context.Context, program *models.ReferralProgram) error {
	program.ID = primitive.NewObjectID()
	program.CreatedAt = time.Now()
	program.UpdatedAt = time.Now()

	if program.Status == "" {
		program.Status = models.ProgramStatusActive
	}

	_, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}

	return nil
}

func (r *programRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralProgram, error) {
	cacheKey := utils.CacheProgramPrefix + id.Hex()
	if r.cache != nil {
		var cached models.ReferralProgram
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var program models.ReferralProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}

	// Only active programs are cached; paused and ended ones change
	// rarely but must be re-read on resume.
	if r.cache != nil && program.IsActive() {
		r.cache.Set(ctx, cacheKey, &program, 5*time.Minute)
	}

	return &program, nil
}

func (r *programRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *programRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *programRepository) List(ctx context.Context, workspaceID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralProgram, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "description"})
	filter["workspace_id"] = workspaceID

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count programs: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list programs: %w", err)
	}
	defer cursor.Close(ctx)

	var programs []*models.ReferralProgram
	if err := cursor.All(ctx, &programs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode programs: %w", err)
	}

	return programs, total, nil
}

func (r *programRepository) GetActivePrograms(ctx context.Context, workspaceID primitive.ObjectID) ([]*models.ReferralProgram, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"workspace_id": workspaceID,
		"status":       models.ProgramStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find active programs: %w", err)
	}
	defer cursor.Close(ctx)

	var programs []*models.ReferralProgram
	if err := cursor.All(ctx, &programs); err != nil {
		return nil, fmt.Errorf("failed to decode programs: %w", err)
	}

	return programs, nil
}

func (r *programRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ProgramStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *programRepository) IncrementReferrers(ctx context.Context, id primitive.ObjectID) error {
	return r.increment(ctx, id, bson.M{"analytics.total_referrers": 1})
}

func (r *programRepository) IncrementClicks(ctx context.Context, id primitive.ObjectID) error {
	return r.increment(ctx, id, bson.M{"analytics.total_clicks": 1})
}

func (r *programRepository) RecordConversion(ctx context.Context, id primitive.ObjectID, commission float64) error {
	return r.increment(ctx, id, bson.M{
		"analytics.total_conversions": 1,
		"analytics.total_commission":  commission,
	})
}

func (r *programRepository) ReverseConversion(ctx context.Context, id primitive.ObjectID, commission float64) error {
	return r.increment(ctx, id, bson.M{
		"analytics.total_conversions": -1,
		"analytics.total_commission":  -commission,
	})
}

func (r *programRepository) RecordPayout(ctx context.Context, id primitive.ObjectID, amount float64) error {
	return r.increment(ctx, id, bson.M{"analytics.total_paid_out": amount})
}

func (r *programRepository) increment(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": fields,
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment program counters: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *programRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheProgramPrefix+id.Hex())
	}
}
