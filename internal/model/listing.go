package model

import "time"

// PricingMode selects which group of pricing fields is active on a listing.
type PricingMode string

const (
	PricingFlat  PricingMode = "flat"
	PricingUsage PricingMode = "usage"
)

// UsagePricingType is the sub-mode of usage pricing.
type UsagePricingType string

const (
	UsageFlatRate UsagePricingType = "flat_rate"
	UsageTiered   UsagePricingType = "tiered"
)

type BillingPeriod string

const (
	BillingOneTime BillingPeriod = "one_time"
	BillingMonthly BillingPeriod = "monthly"
	BillingYearly  BillingPeriod = "yearly"
)

// SetupTime describes how long buyers wait before the workflow is usable.
type SetupTime string

const (
	SetupSelfService SetupTime = "self_service"
	SetupUnder1Day   SetupTime = "under_1_day"
	Setup1To3Days    SetupTime = "1_3_days"
	SetupOver3Days   SetupTime = "over_3_days"
)

type SourceCodeFormat string

const (
	SourceCodeZip        SourceCodeFormat = "zip"
	SourceCodeRepository SourceCodeFormat = "repository_access"
	SourceCodeURL        SourceCodeFormat = "url"
)

type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pending_review"
	StatusActive        Status = "active"
	StatusInactive      Status = "inactive"
	StatusRejected      Status = "rejected"
)

// UsageTier prices one contiguous band of executions.
type UsageTier struct {
	ID           string  `json:"id"`
	MinUsage     int64   `json:"min_usage"`
	MaxUsage     Bound   `json:"max_usage"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// Listing is the marketplace listing / workflow configuration draft edited by the UI.
// Fields of the inactive pricing mode may be present; validation ignores them.
type Listing struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`

	PricingMode   PricingMode   `json:"pricing_mode"`
	Price         float64       `json:"price"`
	BillingPeriod BillingPeriod `json:"billing_period,omitempty"`

	UsagePricingType  UsagePricingType `json:"usage_pricing_type,omitempty"`
	PricePerExecution float64          `json:"price_per_execution,omitempty"`
	UsageTiers        []UsageTier      `json:"usage_tiers,omitempty"`

	SetupTime       SetupTime `json:"setup_time,omitempty"`
	InstallationURL string    `json:"installation_url,omitempty"`

	SourceCodePrice  *float64         `json:"source_code_price,omitempty"`
	SourceCodeFormat SourceCodeFormat `json:"source_code_format,omitempty"`
	SourceCodeURL    string           `json:"source_code_url,omitempty"`

	Status             Status `json:"status"`
	IsPublic           bool   `json:"is_public"`
	UsageTestCompleted bool   `json:"usage_test_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SwitchPricingMode activates mode and clears every field owned by the other mode,
// so stale values cannot resurface if the user switches back.
func (l *Listing) SwitchPricingMode(mode PricingMode) {
	if l.PricingMode == mode {
		return
	}
	l.PricingMode = mode
	switch mode {
	case PricingFlat:
		l.UsagePricingType = ""
		l.PricePerExecution = 0
		l.UsageTiers = nil
		l.UsageTestCompleted = false
	case PricingUsage:
		l.Price = 0
		l.BillingPeriod = ""
	}
}

// Clone returns a deep copy, safe to hand to code that may mutate it.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	out := *l
	if l.Tags != nil {
		out.Tags = append([]string(nil), l.Tags...)
	}
	if l.UsageTiers != nil {
		out.UsageTiers = append([]UsageTier(nil), l.UsageTiers...)
	}
	if l.SourceCodePrice != nil {
		p := *l.SourceCodePrice
		out.SourceCodePrice = &p
	}
	return &out
}

// Valid reports whether m is a known pricing mode.
func (m PricingMode) Valid() bool {
	return m == PricingFlat || m == PricingUsage
}
