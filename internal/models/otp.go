package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP is a one-time code bound to an actor. At most one unused code is live
// per actor per purpose; issuing a new one invalidates the rest.
type OTP struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ActorID   primitive.ObjectID `bson:"actor_id" json:"actor_id"`
	Role      Role               `bson:"role" json:"role"`
	Email     string             `bson:"email" json:"email"`
	OTPCode   string             `bson:"otp_code" json:"-"`
	Purpose   string             `bson:"purpose" json:"purpose"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	IsUsed    bool               `bson:"is_used" json:"is_used"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

const (
	OTPPurposeRegistration = "registration"
	OTPPurposeLogin        = "login_2fa"
)
