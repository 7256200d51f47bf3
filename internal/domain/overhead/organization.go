package overhead

import (
	"github.com/google/uuid"

	"nomina/internal/domain/calc"
)

// GroupItem is a shared cost allocated at the organization level,
// independent of headcount.
type GroupItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MarketValue float64 `json:"marketValue"`
}

func NewGroupItem(name string, marketValue float64) GroupItem {
	return GroupItem{ID: uuid.NewString(), Name: name, MarketValue: marketValue}
}

// Dispersion models payment-batch runs: BaseIncluded runs are covered,
// each Additional run costs FeePercent of the combined monthly total.
type Dispersion struct {
	BaseIncluded int     `json:"baseIncluded"`
	Additional   int     `json:"additional"`
	FeePercent   float64 `json:"feePercent"`
}

type Summary struct {
	EmployeeTotal       float64 `json:"employeeTotal"`
	GroupTotal          float64 `json:"groupTotal"`
	DispersionSurcharge float64 `json:"dispersionSurcharge"`
	GrandTotal          float64 `json:"grandTotal"`
}

// OrganizationTotal sums per-employee costs, group items (negative market
// values clamp to 0) and the dispersion surcharge into the monthly grand
// total.
func OrganizationTotal(c *calc.Calculator, employees []Employee, groupItems []GroupItem, dispersion Dispersion) Summary {
	var s Summary
	for _, emp := range employees {
		s.EmployeeTotal += EmployeeCost(c, emp)
	}
	for _, item := range groupItems {
		if item.MarketValue > 0 {
			s.GroupTotal += item.MarketValue
		}
	}
	if dispersion.Additional > 0 {
		s.DispersionSurcharge = (s.EmployeeTotal + s.GroupTotal) *
			dispersion.FeePercent / 100 * float64(dispersion.Additional)
	}
	s.GrandTotal = s.EmployeeTotal + s.GroupTotal + s.DispersionSurcharge
	return s
}
