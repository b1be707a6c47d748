package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Company struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name               string             `json:"name" bson:"name"`
	Email              string             `json:"email" bson:"email"`
	Password           string             `json:"-" bson:"password"`
	IndustryType       string             `json:"industryType" bson:"industry_type"`
	Location           string             `json:"location" bson:"location"`
	Logo               string             `json:"logo,omitempty" bson:"logo,omitempty"`
	Description        string             `json:"description,omitempty" bson:"description,omitempty"`
	Website            string             `json:"website,omitempty" bson:"website,omitempty"`
	CompanyType        string             `json:"companyType,omitempty" bson:"company_type,omitempty"`
	IsVerified         bool               `json:"isVerified" bson:"is_verified"`
	IsTwoFactorEnabled bool               `json:"isTwoFactorEnabled" bson:"is_two_factor_enabled"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// CompanySummary is the shape embedded in login and 2FA responses.
type CompanySummary struct {
	ID                 primitive.ObjectID `json:"_id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	IndustryType       string             `json:"industryType"`
	Location           string             `json:"location"`
	IsTwoFactorEnabled bool               `json:"isTwoFactorEnabled"`
}

type CompanyProfileUpdate struct {
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
	IndustryType string `json:"industryType,omitempty" bson:"industry_type,omitempty"`
	CompanyType  string `json:"companyType,omitempty" bson:"company_type,omitempty"`
	Location     string `json:"location,omitempty" bson:"location,omitempty"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
	Website      string `json:"website,omitempty" bson:"website,omitempty"`
	Logo         string `json:"logo,omitempty" bson:"logo,omitempty"`
}

type CompanyDashboard struct {
	TotalJobs            int64            `json:"totalJobs"`
	OpenJobs             int64            `json:"openJobs"`
	TotalApplications    int64            `json:"totalApplications"`
	ApplicationsByStatus map[string]int64 `json:"applicationsByStatus"`
}
