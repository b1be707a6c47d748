package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
)

var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
}

type Application struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	JobID       primitive.ObjectID `json:"jobId" bson:"job_id"`
	UserID      primitive.ObjectID `json:"userId" bson:"user_id"`
	Resume      string             `json:"resume" bson:"resume"`
	CoverLetter string             `json:"coverLetter,omitempty" bson:"cover_letter,omitempty"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
