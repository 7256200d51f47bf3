package calchandler

import (
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/calc"
	"nomina/internal/domain/fiscal"
	"nomina/internal/domain/overhead"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
	"nomina/internal/transport/http/shared"
)

type Handler struct {
	Registry    *fiscal.Registry
	DefaultYear int
}

func NewHandler(registry *fiscal.Registry, defaultYear int) *Handler {
	return &Handler{Registry: registry, DefaultYear: defaultYear}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/fiscal", func(r chi.Router) {
		r.Get("/years", h.handleListYears)
		r.Get("/years/{year}", h.handleGetYear)
	})
	r.Route("/calc", func(r chi.Router) {
		r.Post("/net", h.handleNet)
		r.Post("/gross", h.handleGross)
		r.Post("/employee", h.handleEmployee)
		r.Post("/organization", h.handleOrganization)
	})
}

func (h *Handler) calculator(year int) (*calc.Calculator, bool) {
	if year == 0 {
		year = h.DefaultYear
	}
	table, ok := h.Registry.Table(year)
	if !ok {
		return nil, false
	}
	return calc.New(table), true
}

func (h *Handler) handleListYears(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]any{"years": h.Registry.Years(), "default": h.DefaultYear},
		middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetYear(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	year := shared.ParseYear(chi.URLParam(r, "year"))
	table, ok := h.Registry.Table(year)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "no fiscal table for year", requestID)
		return
	}
	api.Success(w, table, requestID)
}

type netPayload struct {
	GrossSalary float64 `json:"grossSalary"`
	Year        int     `json:"year,omitempty"`
}

type netResponse struct {
	GrossSalary    float64           `json:"grossSalary"`
	Withholding    float64           `json:"withholding"`
	SocialSecurity calc.Contribution `json:"socialSecurity"`
	Retirement     calc.Contribution `json:"retirement"`
	NetSalary      float64           `json:"netSalary"`
}

func (h *Handler) handleNet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload netPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", requestID)
		return
	}

	c, ok := h.calculator(payload.Year)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "no fiscal table for year", requestID)
		return
	}

	gross := payload.GrossSalary
	if gross < 0 {
		gross = 0
	}
	api.Success(w, round2Response(netResponse{
		GrossSalary:    gross,
		Withholding:    c.Withholding(gross),
		SocialSecurity: c.SocialSecurity(gross),
		Retirement:     c.Retirement(gross),
		NetSalary:      c.Net(gross),
	}), requestID)
}

type grossPayload struct {
	NetSalary float64 `json:"netSalary"`
	Year      int     `json:"year,omitempty"`
}

type grossResponse struct {
	GrossSalary float64 `json:"grossSalary"`
	NetSalary   float64 `json:"netSalary"`
	Converged   bool    `json:"converged"`
}

func (h *Handler) handleGross(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload grossPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", requestID)
		return
	}

	c, ok := h.calculator(payload.Year)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "no fiscal table for year", requestID)
		return
	}

	gross, converged := c.GrossFromNet(payload.NetSalary)
	api.Success(w, grossResponse{
		GrossSalary: round2(gross),
		NetSalary:   round2(c.Net(gross)),
		Converged:   converged,
	}, requestID)
}

type itemPayload struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Value    float64 `json:"value"`
	Category string  `json:"category"`
	Calc     string  `json:"calc,omitempty"`
}

type employeePayload struct {
	Name          string        `json:"name"`
	MonthlySalary float64       `json:"monthlySalary"`
	Items         []itemPayload `json:"items"`
	UseDefaults   bool          `json:"useDefaults,omitempty"`
}

func (p employeePayload) validate(v *shared.Validator, prefix string) {
	v.Required(prefix+"name", p.Name, "is required")
	for i, item := range p.Items {
		field := shared.IndexedField(prefix+"items", i)
		switch item.Kind {
		case overhead.KindFixed, overhead.KindDays:
			v.NonNegative(field+".value", item.Value)
		case overhead.KindPercent, overhead.KindAnnualPercent, overhead.KindCappedPercent:
			v.Percentage(field+".value", item.Value)
		case overhead.KindComputed:
			switch item.Calc {
			case overhead.CalcWithholding, overhead.CalcSocialSecurityEmployer,
				overhead.CalcSocialSecurityEmployee, overhead.CalcRetirementEmployer,
				overhead.CalcRetirementEmployee:
			default:
				v.Add(field+".calc", "unknown calculator reference")
			}
		default:
			v.Add(field+".kind", "unknown item kind")
		}
		switch item.Category {
		case overhead.CategoryBenefit, overhead.CategoryBonus,
			overhead.CategoryEmployerRetention, overhead.CategoryEmployeeRetention:
		default:
			v.Add(field+".category", "unknown category")
		}
	}
}

func (p employeePayload) toEmployee(minimumWage float64) overhead.Employee {
	items := make([]overhead.Item, 0, len(p.Items))
	for _, item := range p.Items {
		if item.Kind == overhead.KindComputed {
			items = append(items, overhead.NewComputedItem(item.Name, item.Category, item.Calc))
			continue
		}
		items = append(items, overhead.NewItem(item.Name, item.Kind, item.Category, item.Value))
	}
	if len(items) == 0 && p.UseDefaults {
		items = overhead.DefaultItems()
	}
	return overhead.NewEmployee(p.Name, p.MonthlySalary, items, minimumWage)
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload struct {
		employeePayload
		Year int `json:"year,omitempty"`
	}
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", requestID)
		return
	}

	c, ok := h.calculator(payload.Year)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "no fiscal table for year", requestID)
		return
	}

	v := shared.NewValidator()
	payload.validate(v, "")
	if v.Reject(w, requestID) {
		return
	}

	emp := payload.toEmployee(c.Table().MinimumMonthlyWage)
	api.Success(w, overhead.EmployeeBreakdown(c, emp), requestID)
}

type organizationPayload struct {
	Year       int                 `json:"year,omitempty"`
	Employees  []employeePayload   `json:"employees"`
	GroupItems []groupItemPayload  `json:"groupItems"`
	Dispersion overhead.Dispersion `json:"dispersion"`
}

type groupItemPayload struct {
	Name        string  `json:"name"`
	MarketValue float64 `json:"marketValue"`
}

func (h *Handler) handleOrganization(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload organizationPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", requestID)
		return
	}

	c, ok := h.calculator(payload.Year)
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "no fiscal table for year", requestID)
		return
	}

	v := shared.NewValidator()
	v.Percentage("dispersion.feePercent", payload.Dispersion.FeePercent)
	for i, emp := range payload.Employees {
		emp.validate(v, shared.IndexedField("employees", i)+".")
	}
	if v.Reject(w, requestID) {
		return
	}

	minWage := c.Table().MinimumMonthlyWage
	employees := make([]overhead.Employee, 0, len(payload.Employees))
	breakdowns := make([]overhead.Breakdown, 0, len(payload.Employees))
	for _, p := range payload.Employees {
		emp := p.toEmployee(minWage)
		employees = append(employees, emp)
		breakdowns = append(breakdowns, overhead.EmployeeBreakdown(c, emp))
	}
	groupItems := make([]overhead.GroupItem, 0, len(payload.GroupItems))
	for _, g := range payload.GroupItems {
		groupItems = append(groupItems, overhead.NewGroupItem(g.Name, g.MarketValue))
	}

	summary := overhead.OrganizationTotal(c, employees, groupItems, payload.Dispersion)
	api.Success(w, map[string]any{
		"employees": breakdowns,
		"summary":   summary,
	}, requestID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2Response(resp netResponse) netResponse {
	resp.GrossSalary = round2(resp.GrossSalary)
	resp.Withholding = round2(resp.Withholding)
	resp.SocialSecurity.Employer = round2(resp.SocialSecurity.Employer)
	resp.SocialSecurity.Employee = round2(resp.SocialSecurity.Employee)
	resp.Retirement.Employer = round2(resp.Retirement.Employer)
	resp.Retirement.Employee = round2(resp.Retirement.Employee)
	resp.NetSalary = round2(resp.NetSalary)
	return resp
}
