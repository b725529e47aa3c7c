package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"listingapi/internal/http/middleware"
	"listingapi/internal/model"
	"listingapi/internal/pricing"
	"listingapi/internal/service"
	serviceMocks "listingapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApp(svc service.ListingService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	app.Use(middleware.Owner())
	RegisterRoutes(app, Deps{Listings: svc, Metrics: prometheus.NewRegistry()})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.OwnerHeader, "owner-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func draftJSON(extra string) string {
	desc := strings.Repeat("Keeps invoices in sync across tools. ", 2)
	return `{"name":"Invoice sync","description":"` + desc + `","pricing_mode":"flat","price":10,"billing_period":"monthly"` + extra + `}`
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "listing_test_total", Help: "t"})
	reg.MustRegister(c)
	c.Inc()

	app := fiber.New()
	app.Get("/metrics", Metrics(reg))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), "listing_test_total 1")
}

func TestListListings(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newApp(mockSvc)

	t.Run("success", func(t *testing.T) {
		expected := &service.ListingListResult{
			Items: []model.Listing{{ID: uuid.NewString(), Name: "Invoice sync"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expected, nil).Once()

		resp := do(t, app, http.MethodGet, "/listings?limit=10&offset=0", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result service.ListingListResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("limit is capped", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 100, 0).Return(&service.ListingListResult{}, nil).Once()
		resp := do(t, app, http.MethodGet, "/listings?limit=5000", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp := do(t, app, http.MethodGet, "/listings?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).Return(nil, errors.New("db gone")).Once()

		resp := do(t, app, http.MethodGet, "/listings", nil)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "db gone")
		assert.NotEmpty(t, body.RequestID)
	})
}

func TestCreateListing(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newApp(mockSvc)

	id := uuid.NewString()
	mockSvc.On("Create", mock.Anything, "owner-1").
		Return(&model.Listing{ID: id, OwnerID: "owner-1", Status: model.StatusDraft}, nil).Once()

	resp := do(t, app, http.MethodPost, "/listings", nil)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var got model.Listing
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, id, got.ID)

	mockSvc.On("Create", mock.Anything, "owner-1").Return(nil, service.ErrOwnerRequired).Once()
	resp = do(t, app, http.MethodPost, "/listings", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "OWNER_REQUIRED", decodeError(t, resp).Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestGetListing(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newApp(mockSvc)

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, id).Return(&model.Listing{ID: id}, nil).Once()

		resp := do(t, app, http.MethodGet, "/listings/"+id, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.Listing
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, id, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		resp := do(t, app, http.MethodGet, "/listings/"+id, nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := do(t, app, http.MethodGet, "/listings/invalid-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
	mockSvc.AssertExpectations(t)
}

func TestSaveListing(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newApp(mockSvc)
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, mock.MatchedBy(func(l *model.Listing) bool {
			return l.ID == id && l.Name == "Invoice sync" && l.PricingMode == model.PricingFlat
		})).Return(nil).Once()
		mockSvc.On("Get", mock.Anything, id).Return(&model.Listing{ID: id, Name: "Invoice sync"}, nil).Once()

		resp := do(t, app, http.MethodPut, "/listings/"+id, draftJSON(""))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("schema violation lists fields", func(t *testing.T) {
		resp := do(t, app, http.MethodPut, "/listings/"+id, `{"pricing_mode":"barter","price":-1}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_BODY", body.Error.Code)
		assert.NotEmpty(t, body.Error.Fields)
	})

	t.Run("empty body", func(t *testing.T) {
		resp := do(t, app, http.MethodPut, "/listings/"+id, nil)
		assert.Equal(t, "BODY_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("not editable", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, mock.Anything).Return(service.ErrNotEditable).Once()

		resp := do(t, app, http.MethodPut, "/listings/"+id, draftJSON(""))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "NOT_EDITABLE", decodeError(t, resp).Error.Code)
	})
}

func TestDeleteListing(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newApp(mockSvc)

	id := uuid.NewString()
	mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()
	resp := do(t, app, http.MethodDelete, "/listings/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()
	resp = do(t, app, http.MethodDelete, "/listings/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestSwitchPricingMode(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newApp(mockSvc)
	id := uuid.NewString()

	mockSvc.On("SwitchPricingMode", mock.Anything, id, model.PricingUsage).
		Return(&model.Listing{ID: id, PricingMode: model.PricingUsage}, nil).Once()
	resp := do(t, app, http.MethodPut, "/listings/"+id+"/pricing-mode", `{"pricing_mode":"usage"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mockSvc.On("SwitchPricingMode", mock.Anything, id, model.PricingMode("barter")).
		Return(nil, service.ErrInvalidPricingMode).Once()
	resp = do(t, app, http.MethodPut, "/listings/"+id+"/pricing-mode", `{"pricing_mode":"barter"}`)
	assert.Equal(t, "INVALID_PRICING_MODE", decodeError(t, resp).Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestReadinessAndValidation(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newApp(mockSvc)
	id := uuid.NewString()

	mockSvc.On("Readiness", mock.Anything, id).Return(&service.Readiness{
		Requirements: []model.Requirement{{ID: "name", Label: "Name", Completed: true}},
		CanPublish:   true,
	}, nil).Once()
	resp := do(t, app, http.MethodGet, "/listings/"+id+"/readiness", nil)
	var r service.Readiness
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	assert.True(t, r.CanPublish)

	mockSvc.On("Validate", mock.Anything, id).Return(&model.ValidationResult{
		IsValid: false,
		Errors:  []model.FieldError{{Field: "tags", Message: "at least one tag is required"}},
	}, nil).Once()
	resp = do(t, app, http.MethodGet, "/listings/"+id+"/validation", nil)
	var v model.ValidationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.Equal(t, "tags", v.Errors[0].Field)
	mockSvc.AssertExpectations(t)
}

func TestPublishListing(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newApp(mockSvc)
	id := uuid.NewString()

	mockSvc.On("Publish", mock.Anything, id).Return(&service.PublishResult{
		Listing:     &model.Listing{ID: id, Status: model.StatusPendingReview},
		SnapshotKey: "listings/" + id + "/submissions/1.json",
	}, nil).Once()
	resp := do(t, app, http.MethodPost, "/listings/"+id+"/publish", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mockSvc.On("Publish", mock.Anything, id).Return(nil, &service.UnmetRequirementsError{
		Errors: []model.FieldError{{Field: "name", Message: "name is required"}},
	}).Once()
	resp = do(t, app, http.MethodPost, "/listings/"+id+"/publish", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "NOT_PUBLISHABLE", body.Error.Code)
	assert.Equal(t, "name", body.Error.Fields[0].Field)
	mockSvc.AssertExpectations(t)
}

func TestValidateTiers(t *testing.T) {
	app := newApp(new(serviceMocks.MockListingService))

	resp := do(t, app, http.MethodPost, "/validate/tiers", `{"usage_tiers":[
		{"min_usage":0,"max_usage":100,"price_per_unit":1},
		{"min_usage":50,"max_usage":"unbounded","price_per_unit":0.5}
	]}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var res pricing.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Summary(), "overlaps")

	resp = do(t, app, http.MethodPost, "/validate/tiers", `{"usage_tiers":[{"max_usage":"lots"}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWizard(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newApp(mockSvc)

	t.Run("next advances past a complete step", func(t *testing.T) {
		resp := do(t, app, http.MethodPost, "/wizard/next", `{"step":0,"listing":`+draftJSON("")+`}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var st wizardState
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
		assert.Equal(t, 1, st.Step)
		assert.True(t, st.Steps[0].Completed)
		assert.True(t, st.Steps[1].Current)
	})

	t.Run("next is blocked by an incomplete step", func(t *testing.T) {
		resp := do(t, app, http.MethodPost, "/wizard/next", `{"step":0,"listing":{"pricing_mode":"flat"}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "STEP_INCOMPLETE", body.Error.Code)
		assert.Equal(t, "name", body.Error.Fields[0].Field)
	})

	t.Run("previous floors at zero", func(t *testing.T) {
		resp := do(t, app, http.MethodPost, "/wizard/previous", `{"step":0,"listing":{"pricing_mode":"flat"}}`)

		var st wizardState
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
		assert.Equal(t, 0, st.Step)
	})

	t.Run("submit only from review", func(t *testing.T) {
		resp := do(t, app, http.MethodPost, "/wizard/submit", `{"step":1,"listing":`+draftJSON("")+`}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "NOT_AT_REVIEW", decodeError(t, resp).Error.Code)
	})

	t.Run("submit saves through the service", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Save", mock.Anything, mock.MatchedBy(func(l *model.Listing) bool {
			return l.ID == id
		})).Return(nil).Once()

		resp := do(t, app, http.MethodPost, "/wizard/submit", `{"step":4,"listing":`+draftJSON(`,"tags":["finance"],"id":"`+id+`"`)+`}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var st wizardState
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
		assert.True(t, st.Submitted)
		mockSvc.AssertExpectations(t)
	})

	t.Run("submit surfaces gateway errors", func(t *testing.T) {
		mockSvc.On("Save", mock.Anything, mock.Anything).Return(service.ErrNotFound).Once()

		resp := do(t, app, http.MethodPost, "/wizard/submit", `{"step":4,"listing":`+draftJSON(`,"tags":["finance"]`)+`}`)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("posted step cannot skip an incomplete step", func(t *testing.T) {
		resp := do(t, app, http.MethodPost, "/wizard/submit", `{"step":4,"listing":{"pricing_mode":"flat"}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "STEP_INCOMPLETE", body.Error.Code)
		assert.Equal(t, "name", body.Error.Fields[0].Field)
		mockSvc.AssertNotCalled(t, "Save", mock.Anything, mock.MatchedBy(func(l *model.Listing) bool {
			return l.Name == ""
		}))
	})

	t.Run("next from a later step re-checks earlier steps", func(t *testing.T) {
		resp := do(t, app, http.MethodPost, "/wizard/next", `{"step":3,"listing":{"name":"Invoice sync","pricing_mode":"flat"}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "STEP_INCOMPLETE", body.Error.Code)
		assert.Equal(t, "description", body.Error.Fields[0].Field)
	})
}

func TestRouting(t *testing.T) {
	app := newApp(new(serviceMocks.MockListingService))

	t.Run("not found route", func(t *testing.T) {
		resp := do(t, app, http.MethodGet, "/non-existent", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp := do(t, app, http.MethodPost, "/health", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})
}
