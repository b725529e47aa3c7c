// Package pricing validates usage-based pricing configuration.
package pricing

import (
	"fmt"
	"sort"
	"strings"

	"listingapi/internal/model"
)

// TiersField is the field path used for errors spanning more than one tier.
const TiersField = "usage_tiers"

// Result is the outcome of ValidateTiers. Errors stay structured; join them
// with Summary only when presenting.
type Result struct {
	IsValid bool               `json:"is_valid"`
	Errors  []model.FieldError `json:"errors"`
}

// Messages returns the error messages without their field paths.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message)
	}
	return out
}

// Summary joins all messages into one line for display.
func (r Result) Summary() string {
	return strings.Join(r.Messages(), "; ")
}

type indexedTier struct {
	pos  int // 1-based position in the caller's list
	tier model.UsageTier
}

// ValidateTiers checks each tier's fields, then walks the tiers ordered by
// minimum usage looking for overlapping ranges and uncovered gaps.
// Tiers are named by their position in the input, not the sorted order.
// The input slice is not modified.
func ValidateTiers(tiers []model.UsageTier) Result {
	if len(tiers) == 0 {
		return Result{
			IsValid: false,
			Errors:  []model.FieldError{{Field: TiersField, Message: "at least one usage tier is required"}},
		}
	}

	errs := make([]model.FieldError, 0)
	for i, t := range tiers {
		pos := i + 1
		if t.MinUsage < 0 {
			errs = append(errs, model.FieldError{
				Field:   tierField(i, "min_usage"),
				Message: fmt.Sprintf("tier %d: minimum usage must be 0 or greater", pos),
			})
		}
		if !t.MaxUsage.IsSet() {
			errs = append(errs, model.FieldError{
				Field:   tierField(i, "max_usage"),
				Message: fmt.Sprintf("tier %d: maximum usage is required (set a value or mark it unbounded)", pos),
			})
		} else if max, ok := t.MaxUsage.Value(); ok && max <= t.MinUsage {
			errs = append(errs, model.FieldError{
				Field:   tierField(i, "max_usage"),
				Message: fmt.Sprintf("tier %d: maximum usage must be greater than minimum usage", pos),
			})
		}
		if !(t.PricePerUnit > 0) {
			errs = append(errs, model.FieldError{
				Field:   tierField(i, "price_per_unit"),
				Message: fmt.Sprintf("tier %d: price per unit must be greater than 0", pos),
			})
		}
	}

	sorted := make([]indexedTier, len(tiers))
	for i, t := range tiers {
		sorted[i] = indexedTier{pos: i + 1, tier: t}
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].tier.MinUsage < sorted[b].tier.MinUsage
	})

	for i := 0; i+1 < len(sorted); i++ {
		cur, next := sorted[i], sorted[i+1]
		if !cur.tier.MaxUsage.IsSet() {
			continue
		}
		if cur.tier.MaxUsage.IsUnbounded() {
			errs = append(errs, overlapError(cur, next))
			continue
		}
		max, _ := cur.tier.MaxUsage.Value()
		switch {
		case max >= next.tier.MinUsage:
			errs = append(errs, overlapError(cur, next))
		case max+1 < next.tier.MinUsage:
			errs = append(errs, model.FieldError{
				Field: TiersField,
				Message: fmt.Sprintf("gap between tier %d and tier %d: usage %d-%d is not covered",
					cur.pos, next.pos, max+1, next.tier.MinUsage-1),
			})
		}
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

func overlapError(cur, next indexedTier) model.FieldError {
	return model.FieldError{
		Field: TiersField,
		Message: fmt.Sprintf("tier %d (%s) overlaps with tier %d (%s)",
			cur.pos, rangeLabel(cur.tier), next.pos, rangeLabel(next.tier)),
	}
}

func tierField(i int, name string) string {
	return fmt.Sprintf("%s[%d].%s", TiersField, i, name)
}

func rangeLabel(t model.UsageTier) string {
	if t.MaxUsage.IsUnbounded() {
		return fmt.Sprintf("%d+", t.MinUsage)
	}
	if max, ok := t.MaxUsage.Value(); ok {
		return fmt.Sprintf("%d-%d", t.MinUsage, max)
	}
	return fmt.Sprintf("%d-?", t.MinUsage)
}
