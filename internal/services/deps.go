package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EventPublisher pushes referral events to connected dashboards.
// Satisfied by pkg/websocket.Handler.
type EventPublisher interface {
	NotifyUser(userID primitive.ObjectID, eventType string, data map[string]interface{})
	NotifyProgram(programID primitive.ObjectID, eventType string, data map[string]interface{})
	NotifyAdmins(eventType string, data map[string]interface{})
}

// DedupeCache is the window-claim primitive for click dedupe. Satisfied
// by pkg/cache.RedisCache.
type DedupeCache interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}

// Transactor runs a function inside a MongoDB transaction. Satisfied by
// pkg/database.MongoDB.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error)) (interface{}, error)
}
