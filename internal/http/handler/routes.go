package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"listingapi/internal/service"
)

// Deps are the collaborators the routes need.
type Deps struct {
	DB       Pinger
	Listings service.ListingService
	Metrics  prometheus.Gatherer
}

// RegisterRoutes attaches every HTTP route to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", Metrics(d.Metrics))
	}

	listings := app.Group("/listings")
	listings.Get("/", ListListings(d.Listings))
	listings.Post("/", CreateListing(d.Listings))
	listings.Get("/:id", GetListing(d.Listings))
	listings.Put("/:id", SaveListing(d.Listings))
	listings.Delete("/:id", DeleteListing(d.Listings))
	listings.Put("/:id/pricing-mode", SwitchPricingMode(d.Listings))
	listings.Get("/:id/readiness", GetReadiness(d.Listings))
	listings.Get("/:id/validation", GetValidation(d.Listings))
	listings.Post("/:id/publish", PublishListing(d.Listings))

	app.Post("/validate/tiers", ValidateTiers())

	wiz := app.Group("/wizard")
	wiz.Post("/next", WizardNext())
	wiz.Post("/previous", WizardPrevious())
	wiz.Post("/submit", WizardSubmit(d.Listings))
}
