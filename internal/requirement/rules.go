// Package requirement holds the publishing rule set for listings.
//
// The rules are declared once and evaluated two ways: in full to build the
// readiness checklist, and restricted to one wizard step to gate navigation.
package requirement

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"listingapi/internal/model"
	"listingapi/internal/pricing"
)

// Step identifies the wizard step that owns a rule.
type Step string

const (
	StepBasicInfo  Step = "basic-info"
	StepPricing    Step = "pricing"
	StepSourceCode Step = "source-code"
	StepDetails    Step = "details"
	StepReview     Step = "review"
)

// MinDescriptionLength is the minimum description length, in characters.
const MinDescriptionLength = 50

// Rule is one declarative publishing requirement.
type Rule struct {
	ID   string
	Step Step
	// Label is the checklist text; it may depend on the document.
	Label func(doc *model.Listing, mode model.PricingMode) string
	// AppliesWhen gates conditional rules; nil means always.
	AppliesWhen func(doc *model.Listing, mode model.PricingMode) bool
	// Check returns the unmet field errors; none means completed.
	Check func(doc *model.Listing, mode model.PricingMode) []model.FieldError
}

func (r Rule) applies(doc *model.Listing, mode model.PricingMode) bool {
	return r.AppliesWhen == nil || r.AppliesWhen(doc, mode)
}

func fixed(label string) func(*model.Listing, model.PricingMode) string {
	return func(*model.Listing, model.PricingMode) string { return label }
}

func fieldErr(field, msg string) []model.FieldError {
	return []model.FieldError{{Field: field, Message: msg}}
}

// Rules is the ordered rule set. Order is the checklist display order.
var Rules = []Rule{
	{
		ID:    "name",
		Step:  StepBasicInfo,
		Label: fixed("Add a listing name"),
		Check: func(doc *model.Listing, _ model.PricingMode) []model.FieldError {
			if strings.TrimSpace(doc.Name) == "" {
				return fieldErr("name", "name is required")
			}
			return nil
		},
	},
	{
		ID:    "description",
		Step:  StepBasicInfo,
		Label: fixed(fmt.Sprintf("Write a description of at least %d characters", MinDescriptionLength)),
		Check: func(doc *model.Listing, _ model.PricingMode) []model.FieldError {
			if n := utf8.RuneCountInString(doc.Description); n < MinDescriptionLength {
				return fieldErr("description",
					fmt.Sprintf("description must be at least %d characters (currently %d)", MinDescriptionLength, n))
			}
			return nil
		},
	},
	{
		ID:    "installation_url",
		Step:  StepDetails,
		Label: fixed("Provide an installation URL for self-service setup"),
		AppliesWhen: func(doc *model.Listing, _ model.PricingMode) bool {
			return doc.SetupTime == model.SetupSelfService
		},
		Check: func(doc *model.Listing, _ model.PricingMode) []model.FieldError {
			if strings.TrimSpace(doc.InstallationURL) == "" {
				return fieldErr("installation_url", "installation URL is required for self-service setup")
			}
			return nil
		},
	},
	{
		ID:    "usage_test",
		Step:  StepReview,
		Label: fixed("Run a usage test"),
		AppliesWhen: func(_ *model.Listing, mode model.PricingMode) bool {
			return mode == model.PricingUsage
		},
		Check: func(doc *model.Listing, _ model.PricingMode) []model.FieldError {
			if !doc.UsageTestCompleted {
				return fieldErr("usage_test_completed", "a usage test must be completed before publishing")
			}
			return nil
		},
	},
	{
		ID:    "pricing",
		Step:  StepPricing,
		Label: pricingLabel,
		Check: checkPricing,
	},
	{
		ID:    "source_code",
		Step:  StepReview,
		Label: fixed("Configure source code delivery"),
		AppliesWhen: func(doc *model.Listing, _ model.PricingMode) bool {
			return doc.SourceCodePrice != nil && *doc.SourceCodePrice > 0
		},
		Check: func(doc *model.Listing, _ model.PricingMode) []model.FieldError {
			if doc.SourceCodeFormat == "" {
				return fieldErr("source_code_format", "source code format is required when source code is sold")
			}
			if doc.SourceCodeFormat == model.SourceCodeURL && strings.TrimSpace(doc.SourceCodeURL) == "" {
				return fieldErr("source_code_url", "source code URL is required for the url format")
			}
			return nil
		},
	},
	{
		ID:    "tags",
		Step:  StepDetails,
		Label: fixed("Add at least one tag"),
		Check: func(doc *model.Listing, _ model.PricingMode) []model.FieldError {
			if len(doc.Tags) == 0 {
				return fieldErr("tags", "at least one tag is required")
			}
			return nil
		},
	},
}

func pricingLabel(doc *model.Listing, mode model.PricingMode) string {
	switch mode {
	case model.PricingFlat:
		if doc.Price == 0 {
			return "Pricing: free"
		}
		return fmt.Sprintf("Pricing: %.2f per %s", doc.Price, periodLabel(doc.BillingPeriod))
	case model.PricingUsage:
		switch doc.UsagePricingType {
		case model.UsageFlatRate:
			return "Pricing: flat rate per execution"
		case model.UsageTiered:
			return "Pricing: tiered usage"
		}
		return "Pricing: choose a usage pricing type"
	}
	return "Pricing: choose a pricing mode"
}

func periodLabel(p model.BillingPeriod) string {
	switch p {
	case model.BillingMonthly:
		return "month"
	case model.BillingYearly:
		return "year"
	default:
		return "purchase"
	}
}

func checkPricing(doc *model.Listing, mode model.PricingMode) []model.FieldError {
	switch mode {
	case model.PricingFlat:
		if doc.Price < 0 {
			return fieldErr("price", "price cannot be negative")
		}
		return nil
	case model.PricingUsage:
		switch doc.UsagePricingType {
		case model.UsageFlatRate:
			if !(doc.PricePerExecution > 0) {
				return fieldErr("price_per_execution", "price per execution must be greater than 0")
			}
			return nil
		case model.UsageTiered:
			return pricing.ValidateTiers(doc.UsageTiers).Errors
		}
		return fieldErr("usage_pricing_type", "choose flat rate or tiered usage pricing")
	}
	return fieldErr("pricing_mode", "choose a pricing mode")
}
