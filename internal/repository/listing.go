package repository

import (
	"context"

	"listingapi/internal/model"
)

// ListingRepository defines data access for listings using SQL queries only.
// Persistence only, no business rules.
type ListingRepository interface {
	// Create inserts a new listing record and returns the stored listing.
	Create(ctx context.Context, l *model.Listing) (*model.Listing, error)

	// FindByID returns a listing by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Listing, error)

	// List returns a paginated list of listings and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Listing], error)

	// Update overwrites an existing listing. It returns sql.ErrNoRows if the row does not exist.
	Update(ctx context.Context, l *model.Listing) (*model.Listing, error)

	// Delete removes a listing by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
