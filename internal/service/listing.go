package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"listingapi/internal/cache"
	"listingapi/internal/draft"
	"listingapi/internal/logging"
	"listingapi/internal/model"
	"listingapi/internal/repository"
	"listingapi/internal/requirement"
	"listingapi/internal/storage"
	"listingapi/internal/wizard"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrOwnerRequired      = errors.New("owner id is required")
	ErrNotFound           = errors.New("listing not found")
	ErrNotEditable        = errors.New("listing is not editable in its current status")
	ErrNotPublishable     = errors.New("listing is not ready to publish")
	ErrInvalidPricingMode = errors.New("invalid pricing mode")
)

// UnmetRequirementsError lists what still blocks publishing.
// It matches ErrNotPublishable under errors.Is.
type UnmetRequirementsError struct {
	Errors []model.FieldError
}

func (e *UnmetRequirementsError) Error() string {
	return fmt.Sprintf("%s: %d unmet requirement(s)", ErrNotPublishable, len(e.Errors))
}

func (e *UnmetRequirementsError) Is(target error) bool { return target == ErrNotPublishable }

// ListingListResult is the service-level DTO for paginated listings.
type ListingListResult struct {
	Items []model.Listing `json:"data"`
	Total int             `json:"total"`
}

// Readiness is the publish checklist for one listing.
type Readiness struct {
	Requirements []model.Requirement `json:"requirements"`
	CanPublish   bool                `json:"can_publish"`
}

// PublishResult points at the immutable submission snapshot.
type PublishResult struct {
	Listing     *model.Listing `json:"listing"`
	SnapshotKey string         `json:"snapshot_key"`
	SnapshotURL string         `json:"snapshot_url,omitempty"`
}

// ListingService defines the listing use cases. It also acts as the
// persistence gateway of the wizard.
type ListingService interface {
	Create(ctx context.Context, ownerID string) (*model.Listing, error)
	Get(ctx context.Context, id string) (*model.Listing, error)
	List(ctx context.Context, limit, offset int) (*ListingListResult, error)
	Save(ctx context.Context, doc *model.Listing) error
	SwitchPricingMode(ctx context.Context, id string, mode model.PricingMode) (*model.Listing, error)
	Readiness(ctx context.Context, id string) (*Readiness, error)
	Validate(ctx context.Context, id string) (*model.ValidationResult, error)
	// Publish stores a snapshot of a complete draft and moves it to
	// pending_review. The snapshot is removed again if the status update fails.
	Publish(ctx context.Context, id string) (*PublishResult, error)
	Delete(ctx context.Context, id string) error
}

var _ wizard.Gateway = (ListingService)(nil)

var tracer = otel.Tracer("listingapi/internal/service")

const (
	listingKeyPrefix = "listing:"
	listKeyPrefix    = "listings:"
)

func listingKey(id string) string { return listingKeyPrefix + id }

func listKey(limit, offset int) string {
	return fmt.Sprintf("%s%d:%d", listKeyPrefix, limit, offset)
}

type listingService struct {
	repo     repository.ListingRepository
	store    storage.Storage
	cache    *cache.Cache
	template *draft.Template
	log      *logging.Logger

	listingTTL     time.Duration
	listTTL        time.Duration
	snapshotExpiry time.Duration
	now            func() time.Time
	newID          func() string
}

type Option func(*listingService)

// WithTTL sets how long single listings and list pages stay cached.
func WithTTL(listing, list time.Duration) Option {
	return func(s *listingService) {
		s.listingTTL = listing
		s.listTTL = list
	}
}

// WithSnapshotExpiry sets the lifetime of presigned snapshot URLs.
// Zero disables presigning.
func WithSnapshotExpiry(d time.Duration) Option {
	return func(s *listingService) { s.snapshotExpiry = d }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *listingService) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *listingService) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *listingService) { s.newID = gen }
}

// NewListingService constructs a new ListingService.
func NewListingService(repo repository.ListingRepository, store storage.Storage, c *cache.Cache, tpl *draft.Template, opts ...Option) ListingService {
	s := &listingService{
		repo:           repo,
		store:          store,
		cache:          c,
		template:       tpl,
		log:            logging.Default(),
		listingTTL:     30 * time.Second,
		listTTL:        10 * time.Second,
		snapshotExpiry: 15 * time.Minute,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *listingService) Create(ctx context.Context, ownerID string) (*model.Listing, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrOwnerRequired
	}
	doc := s.template.New(s.newID(), ownerID, s.now())
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	s.cache.ClearPrefix(listKeyPrefix)
	return stored, nil
}

// Get returns a private copy of the cached listing.
func (s *listingService) Get(ctx context.Context, id string) (*model.Listing, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

func (s *listingService) load(ctx context.Context, id string) (*model.Listing, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return cache.Get(ctx, s.cache, listingKey(id), s.listingTTL, func(ctx context.Context) (*model.Listing, error) {
		return s.find(ctx, id)
	})
}

// find bypasses the cache; writes always start from the stored row.
func (s *listingService) find(ctx context.Context, id string) (*model.Listing, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List returns a cached page. The result is shared and must not be mutated.
func (s *listingService) List(ctx context.Context, limit, offset int) (*ListingListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return cache.Get(ctx, s.cache, listKey(limit, offset), s.listTTL, func(ctx context.Context) (*ListingListResult, error) {
		res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
		if err != nil {
			return nil, err
		}
		return &ListingListResult{Items: res.Items, Total: res.Total}, nil
	})
}

// Save overwrites the editable fields of a stored draft. Identity, owner,
// status and creation time always come from the stored row.
func (s *listingService) Save(ctx context.Context, doc *model.Listing) error {
	if doc == nil || doc.ID == "" {
		return ErrIDRequired
	}
	if !doc.PricingMode.Valid() {
		return ErrInvalidPricingMode
	}
	current, err := s.find(ctx, doc.ID)
	if err != nil {
		return err
	}
	if !editable(current.Status) {
		return ErrNotEditable
	}

	next := doc.Clone()
	next.OwnerID = current.OwnerID
	next.CreatedAt = current.CreatedAt
	next.Status = model.StatusDraft
	next.UpdatedAt = s.now()

	_, err = s.update(ctx, next)
	return err
}

func editable(st model.Status) bool {
	return st == model.StatusDraft || st == model.StatusRejected
}

func (s *listingService) update(ctx context.Context, doc *model.Listing) (*model.Listing, error) {
	stored, err := s.repo.Update(ctx, doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}
	s.invalidate(doc.ID)
	return stored, nil
}

func (s *listingService) invalidate(id string) {
	s.cache.Clear(listingKey(id))
	s.cache.ClearPrefix(listKeyPrefix)
}

func (s *listingService) SwitchPricingMode(ctx context.Context, id string, mode model.PricingMode) (*model.Listing, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if !mode.Valid() {
		return nil, ErrInvalidPricingMode
	}
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !editable(doc.Status) {
		return nil, ErrNotEditable
	}
	if doc.PricingMode == mode {
		return doc, nil
	}
	doc.SwitchPricingMode(mode)
	doc.UpdatedAt = s.now()
	return s.update(ctx, doc)
}

func (s *listingService) Readiness(ctx context.Context, id string) (*Readiness, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	reqs := requirement.Requirements(doc, doc.PricingMode)
	return &Readiness{Requirements: reqs, CanPublish: requirement.AllCompleted(reqs)}, nil
}

func (s *listingService) Validate(ctx context.Context, id string) (*model.ValidationResult, error) {
	doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	res := requirement.Validate(doc, doc.PricingMode)
	return &res, nil
}

func (s *listingService) Publish(ctx context.Context, id string) (res *PublishResult, err error) {
	ctx, span := tracer.Start(ctx, "ListingService.Publish",
		trace.WithAttributes(attribute.String("listing.id", id)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "publish failed")
		}
		span.End()
	}()

	return s.publish(ctx, id)
}

func (s *listingService) publish(ctx context.Context, id string) (*PublishResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !editable(doc.Status) {
		return nil, ErrNotEditable
	}
	if res := requirement.Validate(doc, doc.PricingMode); !res.IsValid {
		return nil, &UnmetRequirementsError{Errors: res.Errors}
	}

	now := s.now()
	doc.Status = model.StatusPendingReview
	doc.UpdatedAt = now

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	key := storage.SnapshotKey(doc.ID, now)
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("snapshot.key", key))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"listing-id": doc.ID,
			"owner-id":   doc.OwnerID,
		},
	}); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}

	stored, err := s.update(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.log.Error("service", "snapshot_rollback_failed", delErr, map[string]any{
				"listing_id":   doc.ID,
				"snapshot_key": key,
			})
			return nil, fmt.Errorf("db update failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db update failed: %w", err)
	}

	out := &PublishResult{Listing: stored, SnapshotKey: key}
	if s.snapshotExpiry > 0 {
		u, err := s.store.PresignGet(ctx, key, s.snapshotExpiry)
		if err != nil {
			// The listing is already published; a missing URL is not fatal.
			s.log.Error("service", "snapshot_presign_failed", err, map[string]any{
				"listing_id":   doc.ID,
				"snapshot_key": key,
			})
		} else {
			out.SnapshotURL = u
		}
	}
	return out, nil
}

// Delete removes the listing row. Submission snapshots are kept.
func (s *listingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	s.invalidate(id)
	return nil
}
