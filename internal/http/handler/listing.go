package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"listingapi/internal/http/middleware"
	"listingapi/internal/model"
	"listingapi/internal/schema"
	"listingapi/internal/service"
)

func listingID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// decodeListing checks body against the listing schema and decodes it.
func decodeListing(body []byte) (*model.Listing, error) {
	if err := schema.ValidateListing(body); err != nil {
		return nil, err
	}
	var doc model.Listing
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListListings godoc
// @Summary List listings
// @Tags listings
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.ListingListResult
// @Failure 400 {object} errorPayload
// @Router /listings [get]
func ListListings(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		if limit > 100 {
			limit = 100
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateListing godoc
// @Summary Start a new draft
// @Tags listings
// @Produce json
// @Param X-Owner-ID header string true "owner"
// @Success 201 {object} model.Listing
// @Failure 400 {object} errorPayload
// @Router /listings [post]
func CreateListing(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Create(c.UserContext(), middleware.OwnerFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetListing godoc
// @Summary Get a listing
// @Tags listings
// @Produce json
// @Param id path string true "listing id"
// @Success 200 {object} model.Listing
// @Failure 404 {object} errorPayload
// @Router /listings/{id} [get]
func GetListing(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := listingID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// SaveListing godoc
// @Summary Save a draft
// @Description Replaces the editable fields. Owner, status and timestamps are kept.
// @Tags listings
// @Accept json
// @Produce json
// @Param id path string true "listing id"
// @Param listing body model.Listing true "draft"
// @Success 200 {object} model.Listing
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /listings/{id} [put]
func SaveListing(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := listingID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := decodeListing(c.Body())
		if err != nil {
			return writeBodyError(c, err)
		}
		doc.ID = id
		if err := svc.Save(c.UserContext(), doc); err != nil {
			return writeServiceError(c, err)
		}
		saved, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(saved)
	}
}

// DeleteListing godoc
// @Summary Delete a listing
// @Tags listings
// @Param id path string true "listing id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /listings/{id} [delete]
func DeleteListing(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := listingID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type pricingModeRequest struct {
	PricingMode model.PricingMode `json:"pricing_mode"`
}

// SwitchPricingMode godoc
// @Summary Switch pricing mode
// @Description Clears every field owned by the mode being left.
// @Tags listings
// @Accept json
// @Produce json
// @Param id path string true "listing id"
// @Param body body pricingModeRequest true "new mode"
// @Success 200 {object} model.Listing
// @Failure 400 {object} errorPayload
// @Router /listings/{id}/pricing-mode [put]
func SwitchPricingMode(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := listingID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req pricingModeRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		}
		doc, err := svc.SwitchPricingMode(c.UserContext(), id, req.PricingMode)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// GetReadiness godoc
// @Summary Publishing checklist
// @Tags listings
// @Produce json
// @Param id path string true "listing id"
// @Success 200 {object} service.Readiness
// @Router /listings/{id}/readiness [get]
func GetReadiness(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := listingID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Readiness(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetValidation godoc
// @Summary Validation errors by field
// @Tags listings
// @Produce json
// @Param id path string true "listing id"
// @Success 200 {object} model.ValidationResult
// @Router /listings/{id}/validation [get]
func GetValidation(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := listingID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Validate(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// PublishListing godoc
// @Summary Submit a listing for review
// @Tags listings
// @Produce json
// @Param id path string true "listing id"
// @Success 200 {object} service.PublishResult
// @Failure 422 {object} errorPayload
// @Router /listings/{id}/publish [post]
func PublishListing(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := listingID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Publish(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
