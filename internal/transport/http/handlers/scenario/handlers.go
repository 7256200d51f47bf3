package scenariohandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/overhead"
	"nomina/internal/domain/scenario"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Service *scenario.Service
}

func NewHandler(service *scenario.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/scenarios", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{scenarioID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Post("/employees", h.handleAddEmployee)
			r.Delete("/employees/{employeeID}", h.handleRemoveEmployee)
			r.Get("/result", h.handleResult)
			r.Get("/export.csv", h.handleExportCSV)
			r.Get("/export.pdf", h.handleExportPDF)
		})
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "scenario not found", requestID)
	case errors.Is(err, scenario.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, scenario.ErrUnknownYear):
		api.Fail(w, http.StatusBadRequest, "unknown_year", "no fiscal table for year", requestID)
	case errors.Is(err, scenario.ErrUnknownCurrency):
		api.Fail(w, http.StatusBadRequest, "unknown_currency", "currency not in fiscal table", requestID)
	case errors.Is(err, overhead.ErrInvalidItem):
		api.Fail(w, http.StatusBadRequest, "invalid_item", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestID)
	}
}

type createPayload struct {
	Name       string              `json:"name"`
	FiscalYear int                 `json:"fiscalYear"`
	Currency   string              `json:"currency"`
	Dispersion overhead.Dispersion `json:"dispersion"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload createPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	v.Percentage("dispersion.feePercent", payload.Dispersion.FeePercent)
	if v.Reject(w, requestID) {
		return
	}
	if payload.Currency == "" {
		payload.Currency = "MXN"
	}

	sc, err := h.Service.Create(r.Context(), scenario.CreateParams{
		Name:       payload.Name,
		FiscalYear: payload.FiscalYear,
		Currency:   payload.Currency,
		Dispersion: payload.Dispersion,
	})
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Created(w, sc, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	summaries, err := h.Service.List(r.Context())
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, summaries, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sc, err := h.Service.Get(r.Context(), chi.URLParam(r, "scenarioID"))
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, sc, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload scenario.Scenario
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", requestID)
		return
	}
	payload.ID = chi.URLParam(r, "scenarioID")

	if err := h.Service.Update(r.Context(), payload); err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, payload, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "scenarioID")); err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"deleted": true}, requestID)
}

type addEmployeePayload struct {
	Name          string          `json:"name"`
	MonthlySalary float64         `json:"monthlySalary"`
	Items         []overhead.Item `json:"items,omitempty"`
}

func (h *Handler) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload addEmployeePayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	if v.Reject(w, requestID) {
		return
	}

	emp, err := h.Service.AddEmployee(r.Context(), chi.URLParam(r, "scenarioID"), scenario.AddEmployeeParams{
		Name:          payload.Name,
		MonthlySalary: payload.MonthlySalary,
		Items:         payload.Items,
	})
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Created(w, emp, requestID)
}

func (h *Handler) handleRemoveEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Service.RemoveEmployee(r.Context(), chi.URLParam(r, "scenarioID"), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"deleted": true}, requestID)
}

func (h *Handler) handleResult(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	result, err := h.Service.Result(r.Context(), chi.URLParam(r, "scenarioID"))
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}
