package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaginationParams shapes a skip/limit query with optional case-insensitive
// regex search over named fields and an optional date-range filter.
type PaginationParams struct {
	Page         int
	Limit        int
	Search       string
	SearchFields []string
	DateField    string
	StartDate    *time.Time
	EndDate      *time.Time
	Query        bson.M
	Projection   bson.M
	Sort         bson.D
}

type Pagination struct {
	TotalItems     int64 `json:"totalItems"`
	TotalPages     int   `json:"totalPages"`
	CurrentPage    int   `json:"currentPage"`
	Limit          int   `json:"limit"`
	IsPrevious     bool  `json:"isPrevious"`
	IsNext         bool  `json:"isNext"`
	PageStartCount int   `json:"pageStartCount"`
	PageEndCount   int   `json:"pageEndCount"`
}

// BuildPaginationFilter merges the base query with search and date-range
// clauses. The base query is not mutated.
func BuildPaginationFilter(p PaginationParams) bson.M {
	filter := bson.M{}
	for k, v := range p.Query {
		filter[k] = v
	}

	if p.Search != "" && len(p.SearchFields) > 0 {
		or := make(bson.A, 0, len(p.SearchFields))
		for _, field := range p.SearchFields {
			or = append(or, bson.M{field: bson.M{
				"$regex": primitive.Regex{Pattern: p.Search, Options: "i"},
			}})
		}
		filter["$or"] = or
	}

	if p.DateField != "" && (p.StartDate != nil || p.EndDate != nil) {
		dateRange := bson.M{}
		if p.StartDate != nil {
			dateRange["$gte"] = *p.StartDate
		}
		if p.EndDate != nil {
			dateRange["$lte"] = *p.EndDate
		}
		filter[p.DateField] = dateRange
	}

	return filter
}

func NewPagination(totalItems int64, page, limit, itemCount int) Pagination {
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	skip := (page - 1) * limit

	pageEnd := int64(skip + itemCount)
	if pageEnd > totalItems {
		pageEnd = totalItems
	}

	return Pagination{
		TotalItems:     totalItems,
		TotalPages:     totalPages,
		CurrentPage:    page,
		Limit:          limit,
		IsPrevious:     page > 1,
		IsNext:         page < totalPages,
		PageStartCount: skip + 1,
		PageEndCount:   int(pageEnd),
	}
}

// Paginate runs the shaped query against the collection and decodes one page
// of results.
func Paginate[T any](ctx context.Context, coll *mongo.Collection, p PaginationParams) ([]T, Pagination, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	skip := (p.Page - 1) * p.Limit

	filter := BuildPaginationFilter(p)

	totalItems, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}

	findOpts := options.Find().SetSkip(int64(skip)).SetLimit(int64(p.Limit))
	if p.Projection != nil {
		findOpts.SetProjection(p.Projection)
	}
	if p.Sort != nil {
		findOpts.SetSort(p.Sort)
	}

	cursor, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0, p.Limit)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, Pagination{}, err
	}

	return items, NewPagination(totalItems, p.Page, p.Limit, len(items)), nil
}
