// Package schema checks the shape of incoming listing bodies against a JSON
// Schema before they are decoded. Publishing rules live in requirement.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"listingapi/internal/model"
)

//go:embed listing.schema.json
var listingSchema []byte

// ErrBodyEmpty occurs when the request body was empty.
var ErrBodyEmpty = errors.New("body empty")

// Error lists every schema violation with its field path.
type Error struct {
	Errors []model.FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

func listing() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(listingSchema))
		if compileErr != nil {
			compileErr = fmt.Errorf("gojsonschema.NewSchema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// ValidateListing validates body against the listing schema. It returns
// ErrBodyEmpty, a *Error with the violations, or a wrapped parse error.
func ValidateListing(body []byte) error {
	if len(body) == 0 {
		return ErrBodyEmpty
	}
	sch, err := listing()
	if err != nil {
		return err
	}
	res, err := sch.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("json schema validate: %w", err)
	}
	if res.Valid() {
		return nil
	}
	return toFieldErrors(res.Errors())
}

func toFieldErrors(errs []gojsonschema.ResultError) *Error {
	out := make([]model.FieldError, 0, len(errs))
	for _, e := range errs {
		field := e.Field()
		if e.Type() == "required" {
			if prop, ok := e.Details()["property"].(string); ok {
				field = field + "." + prop
			}
		}
		out = append(out, model.FieldError{
			Field:   FieldPath(field),
			Message: e.Description(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return &Error{Errors: out}
}

// FieldPath converts gojsonschema's dotted context ("usage_tiers.0.min_usage")
// to the bracketed form used across the API ("usage_tiers[0].min_usage").
func FieldPath(p string) string {
	p = strings.TrimPrefix(p, "(root)")
	p = strings.TrimPrefix(p, ".")
	if p == "" {
		return ""
	}
	var b strings.Builder
	for i, seg := range strings.Split(p, ".") {
		if _, err := strconv.Atoi(seg); err == nil && i > 0 {
			b.WriteString("[" + seg + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
