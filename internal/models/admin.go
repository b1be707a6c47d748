package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin has no is_verified field; admin accounts are seeded and treated as
// always verified.
type Admin struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name               string             `json:"name" bson:"name"`
	Username           string             `json:"username" bson:"username"`
	Email              string             `json:"email" bson:"email"`
	Password           string             `json:"-" bson:"password"`
	IsTwoFactorEnabled bool               `json:"isTwoFactorEnabled" bson:"is_two_factor_enabled"`
	ProfileImage       string             `json:"profileImage,omitempty" bson:"profile_image,omitempty"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

type AdminSummary struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
}

type AdminDashboard struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalCompanies int64 `json:"totalCompanies"`
	TotalJobs      int64 `json:"totalJobs"`
}
