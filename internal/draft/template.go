// Package draft builds new listing drafts from a YAML template.
package draft

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"listingapi/internal/model"
)

//go:embed default.yaml
var defaultTemplate []byte

// Template holds the field values every new draft starts with.
type Template struct {
	Name             string                 `yaml:"name"`
	Description      string                 `yaml:"description"`
	Tags             []string               `yaml:"tags"`
	PricingMode      model.PricingMode      `yaml:"pricing_mode"`
	Price            float64                `yaml:"price"`
	BillingPeriod    model.BillingPeriod    `yaml:"billing_period"`
	UsagePricingType model.UsagePricingType `yaml:"usage_pricing_type"`
	UsageTiers       []TierTemplate         `yaml:"usage_tiers"`
	SetupTime        model.SetupTime        `yaml:"setup_time"`
	Status           model.Status           `yaml:"status"`
	IsPublic         bool                   `yaml:"is_public"`
}

type TierTemplate struct {
	MinUsage     int64       `yaml:"min_usage"`
	MaxUsage     model.Bound `yaml:"max_usage"`
	PricePerUnit float64     `yaml:"price_per_unit"`
}

// Default returns the embedded template.
func Default() (*Template, error) {
	return Parse(defaultTemplate)
}

// Load reads a template from path, or the embedded default when path is empty.
func Load(path string) (*Template, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft template: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML template and rejects unknown pricing modes.
func Parse(b []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse draft template: %w", err)
	}
	if t.PricingMode == "" {
		t.PricingMode = model.PricingFlat
	}
	if !t.PricingMode.Valid() {
		return nil, fmt.Errorf("parse draft template: unknown pricing_mode %q", t.PricingMode)
	}
	if t.Status == "" {
		t.Status = model.StatusDraft
	}
	return &t, nil
}

// New builds a fresh draft owned by ownerID.
func (t *Template) New(id, ownerID string, now time.Time) *model.Listing {
	doc := &model.Listing{
		ID:               id,
		OwnerID:          ownerID,
		Name:             t.Name,
		Description:      t.Description,
		Tags:             append([]string{}, t.Tags...),
		PricingMode:      t.PricingMode,
		Price:            t.Price,
		BillingPeriod:    t.BillingPeriod,
		UsagePricingType: t.UsagePricingType,
		SetupTime:        t.SetupTime,
		Status:           t.Status,
		IsPublic:         t.IsPublic,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for i, tt := range t.UsageTiers {
		doc.UsageTiers = append(doc.UsageTiers, model.UsageTier{
			ID:           fmt.Sprintf("tier-%d", i+1),
			MinUsage:     tt.MinUsage,
			MaxUsage:     tt.MaxUsage,
			PricePerUnit: tt.PricePerUnit,
		})
	}
	return doc
}
