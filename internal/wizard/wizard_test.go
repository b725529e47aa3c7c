package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"listingapi/internal/model"
	"listingapi/internal/requirement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Save(ctx context.Context, doc *model.Listing) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func completeDraft() *model.Listing {
	return &model.Listing{
		ID:          "draft-1",
		Name:        "Lead enrichment",
		Description: strings.Repeat("Enriches CRM leads with firmographic data. ", 2),
		Tags:        []string{"crm", "sales"},
		PricingMode: model.PricingFlat,
		Price:       25,
		SetupTime:   model.SetupUnder1Day,
		Status:      model.StatusDraft,
	}
}

func TestController_WalkThrough(t *testing.T) {
	ctx := context.Background()
	gw := new(mockGateway)
	doc := completeDraft()
	c := New(doc, model.PricingFlat, gw)

	assert.Equal(t, 0, c.Current())
	for i := 1; i < len(DefaultSteps); i++ {
		require.NoError(t, c.Next())
		assert.Equal(t, i, c.Current())
	}

	// Capped at the last step.
	require.NoError(t, c.Next())
	assert.Equal(t, len(DefaultSteps)-1, c.Current())

	gw.On("Save", ctx, mock.MatchedBy(func(d *model.Listing) bool {
		return d.ID == "draft-1" && d != doc
	})).Return(nil).Once()

	require.NoError(t, c.Submit(ctx))
	assert.True(t, c.Submitted())

	assert.ErrorIs(t, c.Next(), ErrSubmitted)
	assert.ErrorIs(t, c.Previous(), ErrSubmitted)
	assert.ErrorIs(t, c.Submit(ctx), ErrSubmitted)
	gw.AssertExpectations(t)
}

func TestController_NextBlockedByIncompleteStep(t *testing.T) {
	doc := completeDraft()
	doc.Name = ""
	doc.Description = "too short"
	c := New(doc, model.PricingFlat, new(mockGateway))

	err := c.Next()

	var incomplete *StepIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, requirement.StepBasicInfo, incomplete.Step)
	require.Len(t, incomplete.Errors, 2)
	assert.Equal(t, "name", incomplete.Errors[0].Field)
	assert.Equal(t, "description", incomplete.Errors[1].Field)
	assert.Contains(t, err.Error(), "name, description")
	assert.Equal(t, 0, c.Current())

	// Edits to the draft are picked up on the next attempt.
	doc.Name = "Fixed"
	doc.Description = strings.Repeat("x", requirement.MinDescriptionLength)
	require.NoError(t, c.Next())
	assert.Equal(t, 1, c.Current())
}

func TestController_PricingStepUsesTierValidation(t *testing.T) {
	doc := completeDraft()
	doc.SwitchPricingMode(model.PricingUsage)
	doc.UsagePricingType = model.UsageTiered
	doc.UsageTiers = []model.UsageTier{
		{MinUsage: 0, MaxUsage: model.Bounded(50), PricePerUnit: 1},
		{MinUsage: 60, MaxUsage: model.Unbounded(), PricePerUnit: 2},
	}
	c := New(doc, model.PricingUsage, new(mockGateway), AtStep(1))

	err := c.Next()

	var incomplete *StepIncompleteError
	require.ErrorAs(t, err, &incomplete)
	require.Len(t, incomplete.Errors, 1)
	assert.Equal(t, "usage_tiers", incomplete.Errors[0].Field)
	assert.Contains(t, incomplete.Errors[0].Message, "51-59")
}

func TestController_OptionalStepAlwaysComplete(t *testing.T) {
	doc := completeDraft()
	price := 50.0
	doc.SourceCodePrice = &price // no format chosen
	c := New(doc, model.PricingFlat, new(mockGateway), AtStep(2))

	steps := c.Steps()
	assert.True(t, steps[2].Optional)
	assert.True(t, steps[2].Completed)
	assert.True(t, steps[2].Current)
	require.NoError(t, c.Next())

	// The source code rule still shows up on the review step.
	assert.False(t, c.Steps()[4].Completed)
}

func TestController_Previous(t *testing.T) {
	doc := completeDraft()
	doc.Name = ""
	c := New(doc, model.PricingFlat, new(mockGateway), AtStep(3))

	require.NoError(t, c.Previous())
	assert.Equal(t, 2, c.Current())
	require.NoError(t, c.Previous())
	require.NoError(t, c.Previous())
	require.NoError(t, c.Previous())
	assert.Equal(t, 0, c.Current(), "floored at the first step")
}

func TestController_AtStepClamped(t *testing.T) {
	assert.Equal(t, 0, New(completeDraft(), model.PricingFlat, nil, AtStep(-3)).Current())
	assert.Equal(t, 4, New(completeDraft(), model.PricingFlat, nil, AtStep(99)).Current())
}

func TestController_Reachable(t *testing.T) {
	require.NoError(t, New(completeDraft(), model.PricingFlat, nil, AtStep(4)).Reachable())

	doc := completeDraft()
	doc.Tags = nil
	doc.Price = -1
	c := New(doc, model.PricingFlat, nil, AtStep(4))

	var inc *StepIncompleteError
	require.ErrorAs(t, c.Reachable(), &inc)
	assert.Equal(t, requirement.StepPricing, inc.Step)

	// The current step itself is not checked.
	require.NoError(t, New(doc, model.PricingFlat, nil, AtStep(1)).Reachable())
}

func TestController_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("not terminal", func(t *testing.T) {
		gw := new(mockGateway)
		c := New(completeDraft(), model.PricingFlat, gw, AtStep(2))
		assert.ErrorIs(t, c.Submit(ctx), ErrNotTerminal)
		gw.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("gateway failure keeps wizard on review", func(t *testing.T) {
		gw := new(mockGateway)
		doc := completeDraft()
		c := New(doc, model.PricingFlat, gw, AtStep(4))
		gw.On("Save", ctx, mock.Anything).Return(errors.New("db down")).Once()

		err := c.Submit(ctx)

		assert.ErrorContains(t, err, "submit: db down")
		assert.False(t, c.Submitted())
		assert.Equal(t, 4, c.Current())
		assert.Equal(t, completeDraft(), doc)

		gw.On("Save", ctx, mock.Anything).Return(nil).Once()
		require.NoError(t, c.Submit(ctx))
		gw.AssertExpectations(t)
	})
}
