package overhead

import (
	"math"
	"strconv"
)

// RegisterHeader is the column order of the flat export, one row per
// employee.
var RegisterHeader = []string{
	"employee_id", "employee_name", "gross_salary", "benefits", "bonuses",
	"employer_retentions", "employee_retentions", "net_salary", "total_cost",
	"currency",
}

// RegisterRow flattens a breakdown for CSV export. Amounts are divided by
// the currency multiplier and rounded to 2 decimals here, at the
// presentation boundary only.
func RegisterRow(b Breakdown, currency string, multiplier float64) []string {
	if multiplier <= 0 {
		multiplier = 1
	}
	money := func(v float64) string {
		return strconv.FormatFloat(round2(v/multiplier), 'f', 2, 64)
	}
	return []string{
		b.EmployeeID,
		b.EmployeeName,
		money(b.Gross),
		money(b.Benefits),
		money(b.Bonuses),
		money(b.EmployerRetentions),
		money(b.EmployeeRetentions),
		money(b.Net),
		money(b.TotalCost),
		currency,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
