package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"listingapi/internal/model"
	"listingapi/internal/repository"
)

// ListingPostgres is a PostgreSQL implementation of repository.ListingRepository.
// The full draft lives in a JSONB column; the columns beside it exist for
// filtering and ordering. It contains no business logic.
type ListingPostgres struct {
	db *sql.DB
}

// NewListingPostgres creates a new ListingPostgres repository.
func NewListingPostgres(db *sql.DB) *ListingPostgres {
	return &ListingPostgres{db: db}
}

var _ repository.ListingRepository = (*ListingPostgres)(nil)

const listingColumns = `document, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*model.Listing, error) {
	var (
		raw []byte
		l   model.Listing
	)
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&raw, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decode listing document: %w", err)
	}
	if createdAt.Valid {
		l.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		l.UpdatedAt = updatedAt.Time
	}
	return &l, nil
}

// Create inserts a new listing row and returns the stored record.
func (r *ListingPostgres) Create(ctx context.Context, l *model.Listing) (*model.Listing, error) {
	doc, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode listing document: %w", err)
	}
	const q = `
		INSERT INTO listings (id, owner_id, name, status, is_public, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + listingColumns
	row := r.db.QueryRowContext(ctx, q,
		l.ID,
		l.OwnerID,
		l.Name,
		string(l.Status),
		l.IsPublic,
		doc,
		l.CreatedAt,
		l.UpdatedAt,
	)
	return scanListing(row)
}

// FindByID fetches a single listing by its ID.
func (r *ListingPostgres) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	const q = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE id = $1
	`
	return scanListing(r.db.QueryRowContext(ctx, q, id))
}

// List returns listings using LIMIT/OFFSET pagination and a total count.
func (r *ListingPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Listing], error) {
	const qCount = `SELECT COUNT(*) FROM listings`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + listingColumns + `
		FROM listings
		ORDER BY updated_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Listing]{
		Items: items,
		Total: total,
	}, nil
}

// Update overwrites the stored listing. Returns sql.ErrNoRows when id is unknown.
func (r *ListingPostgres) Update(ctx context.Context, l *model.Listing) (*model.Listing, error) {
	doc, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode listing document: %w", err)
	}
	const q = `
		UPDATE listings
		SET name = $2, status = $3, is_public = $4, document = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + listingColumns
	row := r.db.QueryRowContext(ctx, q,
		l.ID,
		l.Name,
		string(l.Status),
		l.IsPublic,
		doc,
		l.UpdatedAt,
	)
	return scanListing(row)
}

// Delete removes a listing by ID. It does not return an error if the row does not exist.
func (r *ListingPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM listings WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
