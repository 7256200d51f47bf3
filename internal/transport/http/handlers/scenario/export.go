package scenariohandler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"nomina/internal/domain/overhead"
	"nomina/internal/domain/scenario"
	"nomina/internal/transport/http/api"
	"nomina/internal/transport/http/middleware"
)

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sc, err := h.Service.Get(r.Context(), chi.URLParam(r, "scenarioID"))
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	result, err := h.Service.Compute(sc)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	table, err := h.Service.Table(sc)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	multiplier, _ := table.CurrencyMultiplier(sc.Currency)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sc.Name+"-register.csv"))

	writer := csv.NewWriter(w)
	_ = writer.Write(overhead.RegisterHeader)
	for _, b := range result.Employees {
		_ = writer.Write(overhead.RegisterRow(b, sc.Currency, multiplier))
	}
	writer.Flush()
}

// exportAmount converts a base-currency amount for presentation. Rounding
// happens in the %.2f formatting, at this boundary only.
func exportAmount(v, multiplier float64) float64 {
	if multiplier <= 0 {
		multiplier = 1
	}
	return v / multiplier
}

func employeeLines(result scenario.Result, currency string, multiplier float64) []string {
	lines := make([]string, 0, len(result.Employees))
	for _, b := range result.Employees {
		lines = append(lines, fmt.Sprintf("%s  gross %.2f  net %.2f  cost %.2f %s",
			b.EmployeeName,
			exportAmount(b.Gross, multiplier),
			exportAmount(b.Net, multiplier),
			exportAmount(b.TotalCost, multiplier),
			currency))
	}
	return lines
}

func totalLines(s overhead.Summary, currency string, multiplier float64) []string {
	return []string{
		fmt.Sprintf("Employee total: %.2f %s", exportAmount(s.EmployeeTotal, multiplier), currency),
		fmt.Sprintf("Group total: %.2f %s", exportAmount(s.GroupTotal, multiplier), currency),
		fmt.Sprintf("Dispersion surcharge: %.2f %s", exportAmount(s.DispersionSurcharge, multiplier), currency),
		fmt.Sprintf("Grand total: %.2f %s", exportAmount(s.GrandTotal, multiplier), currency),
	}
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sc, err := h.Service.Get(r.Context(), chi.URLParam(r, "scenarioID"))
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	result, err := h.Service.Compute(sc)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	table, err := h.Service.Table(sc)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}
	multiplier, _ := table.CurrencyMultiplier(sc.Currency)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Monthly cost summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Scenario: %s (fiscal year %d)", sc.Name, sc.FiscalYear))
	pdf.Ln(10)

	for _, line := range employeeLines(result, sc.Currency, multiplier) {
		pdf.Cell(0, 8, line)
		pdf.Ln(7)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 12)
	for _, line := range totalLines(result.Summary, sc.Currency, multiplier) {
		pdf.Cell(0, 8, line)
		pdf.Ln(7)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sc.Name+"-summary.pdf"))
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "pdf generation failed", requestID)
	}
}
