package model

// FieldError ties a message to a field path such as "usage_tiers[0].min_usage".
// The path format is keyed on by the UI's label lookup table and must not change.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the validation payload consumed by the UI.
type ValidationResult struct {
	IsValid bool         `json:"is_valid"`
	Errors  []FieldError `json:"errors"`
}

// Requirement is one checklist item of publishing readiness.
type Requirement struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}
