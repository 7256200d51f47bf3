package overhead

import (
	"github.com/google/uuid"

	"nomina/internal/domain/calc"
)

type Employee struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MonthlySalary float64 `json:"monthlySalary"`
	Items         []Item  `json:"items"`
}

// ClampSalary applies the silent input-correction policy: negatives become
// 0 and positive amounts below the legal minimum are raised to it. A zero
// salary stays zero and yields zero totals downstream.
func ClampSalary(monthlySalary, minimumWage float64) float64 {
	if monthlySalary < 0 {
		return 0
	}
	if monthlySalary > 0 && monthlySalary < minimumWage {
		return minimumWage
	}
	return monthlySalary
}

// NewEmployee clamps the salary via ClampSalary.
func NewEmployee(name string, monthlySalary float64, items []Item, minimumWage float64) Employee {
	return Employee{
		ID:            uuid.NewString(),
		Name:          name,
		MonthlySalary: ClampSalary(monthlySalary, minimumWage),
		Items:         items,
	}
}

// Breakdown is the per-employee calculation result. It is recomputed in
// full on every request, never stored or partially updated.
type Breakdown struct {
	EmployeeID         string  `json:"employeeId"`
	EmployeeName       string  `json:"employeeName"`
	Gross              float64 `json:"gross"`
	Benefits           float64 `json:"benefits"`
	Bonuses            float64 `json:"bonuses"`
	EmployerRetentions float64 `json:"employerRetentions"`
	EmployeeRetentions float64 `json:"employeeRetentions"`
	Net                float64 `json:"net"`
	TotalCost          float64 `json:"totalCost"`
}

// ItemCost computes one line item's monthly cost for a salary.
func ItemCost(c *calc.Calculator, item Item, monthlySalary float64) float64 {
	table := c.Table()
	switch item.Kind {
	case KindFixed:
		return item.Value
	case KindPercent:
		return monthlySalary * item.Value / 100
	case KindAnnualPercent:
		// Percentage of the annual salary brought back to a monthly cost.
		// Contractually distinct from the plain monthly percentage.
		return (monthlySalary * 12 * item.Value / 100) / 12
	case KindCappedPercent:
		base := monthlySalary
		if cap := table.ContributionCapMonthly(); base > cap {
			base = cap
		}
		return base * item.Value / 100
	case KindDays:
		return (monthlySalary / table.DaysPerMonth) * item.Value
	case KindComputed:
		switch item.Calc {
		case CalcWithholding:
			return c.Withholding(monthlySalary)
		case CalcSocialSecurityEmployer:
			return c.SocialSecurity(monthlySalary).Employer
		case CalcSocialSecurityEmployee:
			return c.SocialSecurity(monthlySalary).Employee
		case CalcRetirementEmployer:
			return c.Retirement(monthlySalary).Employer
		case CalcRetirementEmployee:
			return c.Retirement(monthlySalary).Employee
		}
	}
	return 0
}

// EmployeeBreakdown buckets every line item into its category and derives
// net pay and total cost. Net is gross minus the employee retentions; total
// cost is gross plus every line item.
func EmployeeBreakdown(c *calc.Calculator, emp Employee) Breakdown {
	b := Breakdown{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Gross:        emp.MonthlySalary,
	}
	if emp.MonthlySalary <= 0 {
		return b
	}

	for _, item := range emp.Items {
		cost := ItemCost(c, item, emp.MonthlySalary)
		switch item.Category {
		case CategoryBenefit:
			b.Benefits += cost
		case CategoryBonus:
			b.Bonuses += cost
		case CategoryEmployerRetention:
			b.EmployerRetentions += cost
		case CategoryEmployeeRetention:
			b.EmployeeRetentions += cost
		}
	}

	b.Net = b.Gross - b.EmployeeRetentions
	b.TotalCost = b.Gross + b.Benefits + b.Bonuses + b.EmployerRetentions + b.EmployeeRetentions
	return b
}

// EmployeeCost is the total monthly cost of one employee: salary plus every
// overhead line item. Zero for a non-positive salary.
func EmployeeCost(c *calc.Calculator, emp Employee) float64 {
	return EmployeeBreakdown(c, emp).TotalCost
}
