package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var JobTypes = []string{"Full-Time", "Part-Time", "Internship", "Remote"}

type Job struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyID   primitive.ObjectID `json:"companyId" bson:"company_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Location    string             `json:"location" bson:"location"`
	Salary      string             `json:"salary,omitempty" bson:"salary,omitempty"`
	Type        string             `json:"type,omitempty" bson:"type,omitempty"`
	Openings    int                `json:"openings" bson:"openings"`
	Deadline    *time.Time         `json:"deadline,omitempty" bson:"deadline,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
