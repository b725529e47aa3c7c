package mocks

import (
	"context"

	"listingapi/internal/model"
	"listingapi/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockListingService is a testify mock of service.ListingService.
type MockListingService struct {
	mock.Mock
}

var _ service.ListingService = (*MockListingService)(nil)

func (m *MockListingService) Create(ctx context.Context, ownerID string) (*model.Listing, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Get(ctx context.Context, id string) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) List(ctx context.Context, limit, offset int) (*service.ListingListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingListResult), args.Error(1)
}

func (m *MockListingService) Save(ctx context.Context, doc *model.Listing) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockListingService) SwitchPricingMode(ctx context.Context, id string, mode model.PricingMode) (*model.Listing, error) {
	args := m.Called(ctx, id, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) Readiness(ctx context.Context, id string) (*service.Readiness, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Readiness), args.Error(1)
}

func (m *MockListingService) Validate(ctx context.Context, id string) (*model.ValidationResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidationResult), args.Error(1)
}

func (m *MockListingService) Publish(ctx context.Context, id string) (*service.PublishResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublishResult), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
