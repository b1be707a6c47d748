package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// Actor is the credential view shared by users, companies and admins. Each
// actor collection decodes into it for the verification/login flow; the
// role-specific documents carry more fields than these.
type Actor struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name               string             `json:"name" bson:"name"`
	Email              string             `json:"email" bson:"email"`
	Password           string             `json:"-" bson:"password"`
	IsVerified         bool               `json:"isVerified" bson:"is_verified"`
	IsTwoFactorEnabled bool               `json:"isTwoFactorEnabled" bson:"is_two_factor_enabled"`
}
