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

type clickRepository struct {
	collection *mongo.Collection
}

func NewClickRepository(db *mongo.Database) interfaces.ClickRepository {
	return &clickRepository{
		collection: db.Collection("referral_clicks"),
	}
}

func (r *clickRepository) Create(ctx context.Context, click *models.ReferralClick) error {
	click.ID = primitive.NewObjectID()
	click.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, click)
	if err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}

	return nil
}

func (r *clickRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralClick, error) {
	var click models.ReferralClick
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&click)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get click: %w", err)
	}

	return &click, nil
}

func (r *clickRepository) ListByCode(ctx context.Context, codeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralClick, int64, error) {
	filter := bson.M{"code_id": codeID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clicks: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clicks: %w", err)
	}
	defer cursor.Close(ctx)

	var clicks []*models.ReferralClick
	if err := cursor.All(ctx, &clicks); err != nil {
		return nil, 0, fmt.Errorf("failed to decode clicks: %w", err)
	}

	return clicks, total, nil
}

func (r *clickRepository) CountByCodeAndIPSince(ctx context.Context, codeID primitive.ObjectID, ip string, since time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"code_id":            codeID,
		"visitor.ip_address": ip,
		"created_at":         bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count clicks by code and ip: %w", err)
	}

	return count, nil
}

func (r *clickRepository) ExistsInWindow(ctx context.Context, codeID primitive.ObjectID, ip string, since time.Time) (bool, error) {
	count, err := r.CountByCodeAndIPSince(ctx, codeID, ip, since)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
