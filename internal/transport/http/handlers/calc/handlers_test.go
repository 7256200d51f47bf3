package calchandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"nomina/internal/domain/fiscal"
)

func newRouter() *chi.Mux {
	router := chi.NewRouter()
	NewHandler(fiscal.DefaultRegistry(), 2024).RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
	return envelope.Data
}

func TestListYears(t *testing.T) {
	router := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/fiscal/years", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeData(t, rec)
	if data["default"].(float64) != 2024 {
		t.Fatalf("expected default year 2024, got %v", data["default"])
	}
}

func TestGetYearNotFound(t *testing.T) {
	router := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/fiscal/years/1999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCalcNet(t *testing.T) {
	router := newRouter()
	rec := postJSON(t, router, "/calc/net", map[string]any{"grossSalary": 25000})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	net := data["netSalary"].(float64)
	if net <= 18000 || net >= 25000 {
		t.Fatalf("net %v outside sanity bounds", net)
	}
	if data["withholding"].(float64) <= 0 {
		t.Fatalf("expected positive withholding, got %v", data["withholding"])
	}
}

func TestCalcNetClampsNegative(t *testing.T) {
	router := newRouter()
	rec := postJSON(t, router, "/calc/net", map[string]any{"grossSalary": -500})
	data := decodeData(t, rec)
	if data["netSalary"].(float64) != 0 {
		t.Fatalf("expected zero net for negative gross, got %v", data["netSalary"])
	}
}

func TestCalcGrossRoundTrip(t *testing.T) {
	router := newRouter()
	rec := postJSON(t, router, "/calc/gross", map[string]any{"netSalary": 20000})
	data := decodeData(t, rec)
	if data["converged"] != true {
		t.Fatalf("expected convergence, got %v", data["converged"])
	}
	back := data["netSalary"].(float64)
	if back < 19999 || back > 20001 {
		t.Fatalf("round trip net %v too far from 20000", back)
	}
}

func TestCalcEmployeeRejectsBadKind(t *testing.T) {
	router := newRouter()
	rec := postJSON(t, router, "/calc/employee", map[string]any{
		"name":          "dev",
		"monthlySalary": 25000,
		"items": []map[string]any{
			{"name": "weird", "kind": "exotic", "value": 1, "category": "benefit"},
		},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCalcOrganizationDispersion(t *testing.T) {
	router := newRouter()
	payload := map[string]any{
		"employees": []map[string]any{
			{"name": "a", "monthlySalary": 25000, "useDefaults": true},
			{"name": "b", "monthlySalary": 42000, "useDefaults": true},
		},
		"groupItems": []map[string]any{{"name": "office", "marketValue": 18000}},
		"dispersion": map[string]any{"baseIncluded": 1, "additional": 2, "feePercent": 5},
	}
	rec := postJSON(t, router, "/calc/organization", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	summary := data["summary"].(map[string]any)
	employeeTotal := summary["employeeTotal"].(float64)
	groupTotal := summary["groupTotal"].(float64)
	surcharge := summary["dispersionSurcharge"].(float64)
	want := (employeeTotal + groupTotal) * 0.05 * 2
	if diff := surcharge - want; diff > 0.0001 || diff < -0.0001 {
		t.Fatalf("expected surcharge %v, got %v", want, surcharge)
	}
}

func TestCalcUnknownYear(t *testing.T) {
	router := newRouter()
	rec := postJSON(t, router, "/calc/net", map[string]any{"grossSalary": 25000, "year": 1999})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
