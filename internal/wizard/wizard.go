// Package wizard sequences the listing creation steps over a draft.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"listingapi/internal/model"
	"listingapi/internal/requirement"
)

var (
	// ErrSubmitted is returned for any transition after a successful submit.
	ErrSubmitted = errors.New("wizard already submitted")
	// ErrNotTerminal is returned when submit is attempted before the review step.
	ErrNotTerminal = errors.New("submit is only allowed from the review step")
)

// Gateway persists the draft on submit.
type Gateway interface {
	Save(ctx context.Context, doc *model.Listing) error
}

// StepDef describes one wizard step.
type StepDef struct {
	Step     requirement.Step
	Title    string
	Optional bool
}

// DefaultSteps is the fixed step sequence of the listing wizard.
var DefaultSteps = []StepDef{
	{Step: requirement.StepBasicInfo, Title: "Basic info"},
	{Step: requirement.StepPricing, Title: "Pricing"},
	{Step: requirement.StepSourceCode, Title: "Source code", Optional: true},
	{Step: requirement.StepDetails, Title: "Details"},
	{Step: requirement.StepReview, Title: "Review"},
}

// StepStatus is the per-step view rendered by the UI.
type StepStatus struct {
	Index     int              `json:"index"`
	Step      requirement.Step `json:"step"`
	Title     string           `json:"title"`
	Optional  bool             `json:"optional"`
	Completed bool             `json:"completed"`
	Current   bool             `json:"current"`
}

// StepIncompleteError carries the unmet fields that blocked Next.
type StepIncompleteError struct {
	Step   requirement.Step
	Errors []model.FieldError
}

func (e *StepIncompleteError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return fmt.Sprintf("step %s is incomplete: %s", e.Step, strings.Join(fields, ", "))
}

// Controller holds the wizard position for one editing session.
// It is not safe for concurrent use.
type Controller struct {
	doc       *model.Listing
	mode      model.PricingMode
	gateway   Gateway
	steps     []StepDef
	index     int
	submitted bool
}

type Option func(*Controller)

// AtStep starts the controller at index i, clamped to the valid range.
func AtStep(i int) Option {
	return func(c *Controller) { c.index = i }
}

// WithSteps replaces the step sequence.
func WithSteps(steps []StepDef) Option {
	return func(c *Controller) { c.steps = steps }
}

// New creates a controller over doc. The controller reads doc on every
// transition, so edits made by the caller between calls are observed.
func New(doc *model.Listing, mode model.PricingMode, gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		doc:     doc,
		mode:    mode,
		gateway: gw,
		steps:   DefaultSteps,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.index = clamp(c.index, 0, len(c.steps)-1)
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *Controller) Current() int             { return c.index }
func (c *Controller) CurrentStep() StepDef     { return c.steps[c.index] }
func (c *Controller) Submitted() bool          { return c.submitted }
func (c *Controller) Document() *model.Listing { return c.doc }

// SetMode changes the pricing mode used by step predicates.
func (c *Controller) SetMode(mode model.PricingMode) { c.mode = mode }

func (c *Controller) isTerminal() bool { return c.index == len(c.steps)-1 }

// StepErrors returns the unmet fields of step i. Optional steps never block.
func (c *Controller) StepErrors(i int) []model.FieldError {
	def := c.steps[i]
	if def.Optional {
		return nil
	}
	return requirement.StepErrors(c.doc, c.mode, def.Step)
}

// Reachable returns a StepIncompleteError for the first required step before
// the current one that is still incomplete. A controller restored with AtStep
// uses it to refuse positions that skipped a gate.
func (c *Controller) Reachable() error {
	for i := 0; i < c.index; i++ {
		if errs := c.StepErrors(i); len(errs) > 0 {
			return &StepIncompleteError{Step: c.steps[i].Step, Errors: errs}
		}
	}
	return nil
}

// Steps reports every step's completion for display.
func (c *Controller) Steps() []StepStatus {
	out := make([]StepStatus, len(c.steps))
	for i, def := range c.steps {
		out[i] = StepStatus{
			Index:     i,
			Step:      def.Step,
			Title:     def.Title,
			Optional:  def.Optional,
			Completed: len(c.StepErrors(i)) == 0,
			Current:   i == c.index,
		}
	}
	return out
}

// Next advances one step if the current step is complete.
// On the last step it is a no-op.
func (c *Controller) Next() error {
	if c.submitted {
		return ErrSubmitted
	}
	if errs := c.StepErrors(c.index); len(errs) > 0 {
		return &StepIncompleteError{Step: c.steps[c.index].Step, Errors: errs}
	}
	c.index = clamp(c.index+1, 0, len(c.steps)-1)
	return nil
}

// Previous moves back one step; it never validates.
func (c *Controller) Previous() error {
	if c.submitted {
		return ErrSubmitted
	}
	c.index = clamp(c.index-1, 0, len(c.steps)-1)
	return nil
}

// Submit saves the draft through the gateway. On failure the controller stays
// on the review step and the draft is left untouched.
func (c *Controller) Submit(ctx context.Context) error {
	if c.submitted {
		return ErrSubmitted
	}
	if !c.isTerminal() {
		return ErrNotTerminal
	}
	if err := c.gateway.Save(ctx, c.doc.Clone()); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	c.submitted = true
	return nil
}
