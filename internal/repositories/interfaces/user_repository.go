package interfaces

import (
	"context"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, ip string) error
	AddDeviceToken(ctx context.Context, id primitive.ObjectID, token models.DeviceToken) error
	RemoveDeviceToken(ctx context.Context, id primitive.ObjectID, token string) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
}
