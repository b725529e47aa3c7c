package handler

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"listingapi/internal/requirement"
	"listingapi/internal/service"
	"listingapi/internal/wizard"
)

// wizardRequest carries the client-held wizard state: the draft being
// edited and the step it is on.
type wizardRequest struct {
	Step    int             `json:"step"`
	Listing json.RawMessage `json:"listing"`
}

type wizardState struct {
	Step        int                 `json:"step"`
	CurrentStep requirement.Step    `json:"current_step"`
	Steps       []wizard.StepStatus `json:"steps"`
	Submitted   bool                `json:"submitted"`
}

func stateOf(w *wizard.Controller) wizardState {
	return wizardState{
		Step:        w.Current(),
		CurrentStep: w.CurrentStep().Step,
		Steps:       w.Steps(),
		Submitted:   w.Submitted(),
	}
}

// wizardHandler decodes the posted state, applies move, and answers with
// the new state. gw receives the draft on submit. Since the client holds the
// step index, every required step before it is re-checked first.
func wizardHandler(gw wizard.Gateway, move func(c *fiber.Ctx, w *wizard.Controller) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req wizardRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		}
		doc, err := decodeListing(req.Listing)
		if err != nil {
			return writeBodyError(c, err)
		}

		w := wizard.New(doc, doc.PricingMode, gw, wizard.AtStep(req.Step))
		if err := w.Reachable(); err != nil {
			var inc *wizard.StepIncompleteError
			errors.As(err, &inc)
			return writeFieldErrors(c, fiber.StatusUnprocessableEntity, "STEP_INCOMPLETE", "complete the earlier steps first", inc.Errors)
		}
		if err := move(c, w); err != nil {
			var inc *wizard.StepIncompleteError
			switch {
			case errors.As(err, &inc):
				return writeFieldErrors(c, fiber.StatusUnprocessableEntity, "STEP_INCOMPLETE", "complete the current step first", inc.Errors)
			case errors.Is(err, wizard.ErrNotTerminal):
				return writeError(c, fiber.StatusConflict, "NOT_AT_REVIEW", "submit is only allowed from the review step")
			case errors.Is(err, wizard.ErrSubmitted):
				return writeError(c, fiber.StatusConflict, "ALREADY_SUBMITTED", "wizard already submitted")
			}
			return writeServiceError(c, err)
		}
		return c.JSON(stateOf(w))
	}
}

// WizardNext godoc
// @Summary Advance the wizard
// @Tags wizard
// @Accept json
// @Produce json
// @Param body body wizardRequest true "wizard state"
// @Success 200 {object} wizardState
// @Failure 422 {object} errorPayload
// @Router /wizard/next [post]
func WizardNext() fiber.Handler {
	return wizardHandler(nil, func(_ *fiber.Ctx, w *wizard.Controller) error { return w.Next() })
}

// WizardPrevious godoc
// @Summary Step the wizard back
// @Tags wizard
// @Accept json
// @Produce json
// @Param body body wizardRequest true "wizard state"
// @Success 200 {object} wizardState
// @Router /wizard/previous [post]
func WizardPrevious() fiber.Handler {
	return wizardHandler(nil, func(_ *fiber.Ctx, w *wizard.Controller) error { return w.Previous() })
}

// WizardSubmit godoc
// @Summary Save the draft from the review step
// @Tags wizard
// @Accept json
// @Produce json
// @Param body body wizardRequest true "wizard state"
// @Success 200 {object} wizardState
// @Failure 409 {object} errorPayload
// @Router /wizard/submit [post]
func WizardSubmit(svc service.ListingService) fiber.Handler {
	return wizardHandler(svc, func(c *fiber.Ctx, w *wizard.Controller) error {
		return w.Submit(c.UserContext())
	})
}
