package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string

const (
	UserTypeAdmin  UserType = "admin"
	UserTypeMember UserType = "member"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDeleted   UserStatus = "deleted"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	FirstName    string             `json:"first_name" bson:"first_name"`
	LastName     string             `json:"last_name" bson:"last_name"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	UserType     UserType           `json:"user_type" bson:"user_type"`
	Category     string             `json:"category" bson:"category"`
	Status       UserStatus         `json:"status" bson:"status"`
	GoogleID     string             `json:"-" bson:"google_id,omitempty"`
	DeviceTokens []DeviceToken      `json:"-" bson:"device_tokens,omitempty"`
	LastKnownIP  string             `json:"-" bson:"last_known_ip,omitempty"`
	LastLoginAt  *time.Time         `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

type DeviceToken struct {
	Token    string `json:"token" bson:"token"`
	Platform string `json:"platform" bson:"platform"` // fcm, apns
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
