package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	PhoneNo      string             `json:"phoneNo" bson:"phone_no"`
	Country      string             `json:"country" bson:"country"`
	State        string             `json:"state" bson:"state"`
	City         string             `json:"city" bson:"city"`
	Address      string             `json:"address,omitempty" bson:"address,omitempty"`
	ProfileImage string             `json:"profileImage,omitempty" bson:"profile_image,omitempty"`
	IsVerified   bool               `json:"isVerified" bson:"is_verified"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

type UserProfileUpdate struct {
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
	PhoneNo      string `json:"phoneNo,omitempty" bson:"phone_no,omitempty"`
	Country      string `json:"country,omitempty" bson:"country,omitempty"`
	State        string `json:"state,omitempty" bson:"state,omitempty"`
	City         string `json:"city,omitempty" bson:"city,omitempty"`
	Address      string `json:"address,omitempty" bson:"address,omitempty"`
	ProfileImage string `json:"profileImage,omitempty" bson:"profile_image,omitempty"`
}
