package requirement

import "listingapi/internal/model"

// Requirements evaluates every applicable rule. Rules never short-circuit each
// other so the UI can always render the full checklist.
func Requirements(doc *model.Listing, mode model.PricingMode) []model.Requirement {
	out := make([]model.Requirement, 0, len(Rules))
	for _, r := range Rules {
		if !r.applies(doc, mode) {
			continue
		}
		out = append(out, model.Requirement{
			ID:        r.ID,
			Label:     r.Label(doc, mode),
			Completed: len(r.Check(doc, mode)) == 0,
		})
	}
	return out
}

// CanPublish reports whether every requirement is completed.
func CanPublish(doc *model.Listing, mode model.PricingMode) bool {
	return AllCompleted(Requirements(doc, mode))
}

// AllCompleted is the publish gate over an already evaluated checklist.
func AllCompleted(reqs []model.Requirement) bool {
	for _, r := range reqs {
		if !r.Completed {
			return false
		}
	}
	return true
}

// Validate flattens the unmet applicable rules into field errors.
func Validate(doc *model.Listing, mode model.PricingMode) model.ValidationResult {
	errs := collect(doc, mode, func(Rule) bool { return true })
	return model.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// StepErrors returns the unmet field errors for the rules owned by step.
func StepErrors(doc *model.Listing, mode model.PricingMode, step Step) []model.FieldError {
	return collect(doc, mode, func(r Rule) bool { return r.Step == step })
}

func collect(doc *model.Listing, mode model.PricingMode, keep func(Rule) bool) []model.FieldError {
	errs := make([]model.FieldError, 0)
	for _, r := range Rules {
		if !keep(r) || !r.applies(doc, mode) {
			continue
		}
		errs = append(errs, r.Check(doc, mode)...)
	}
	return errs
}
