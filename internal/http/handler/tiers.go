package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"listingapi/internal/model"
	"listingapi/internal/pricing"
)

type tiersRequest struct {
	UsageTiers []model.UsageTier `json:"usage_tiers"`
}

// ValidateTiers godoc
// @Summary Check a usage tier list
// @Description Reports per-tier problems, overlaps and gaps. Always 200 for well-formed input.
// @Tags pricing
// @Accept json
// @Produce json
// @Param body body tiersRequest true "tiers"
// @Success 200 {object} pricing.Result
// @Failure 400 {object} errorPayload
// @Router /validate/tiers [post]
func ValidateTiers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req tiersRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		}
		return c.JSON(pricing.ValidateTiers(req.UsageTiers))
	}
}
