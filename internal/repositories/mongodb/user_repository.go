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

type userRepository struct {
	collection *mongo.Collection
	cache      Cache
}

func NewUserRepository(db *mongo.Database, cache Cache) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
		cache:      cache,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.Email = utils.NormalizeEmail(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.UserType == "" {
		user.UserType = models.UserTypeMember
	}

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	cacheKey := utils.CacheUserPrefix + id.Hex()
	if r.cache != nil {
		var cached models.User
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, &user, 10*time.Minute)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": utils.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"google_id": googleID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by google id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, ip string) error {
	now := time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"last_login_at": now,
			"last_known_ip": ip,
			"updated_at":    now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *userRepository) AddDeviceToken(ctx context.Context, id primitive.ObjectID, token models.DeviceToken) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$addToSet": bson.M{"device_tokens": token},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add device token: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *userRepository) RemoveDeviceToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull": bson.M{"device_tokens": bson.M{"token": token}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to remove device token: %w", err)
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *userRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	filter := params.GetSearchFilter([]string{"email", "first_name", "last_name"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, total, nil
}

func (r *userRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheUserPrefix+id.Hex())
	}
}
