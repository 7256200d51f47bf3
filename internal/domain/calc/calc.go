// Package calc implements the payroll calculators: ISR withholding, IMSS
// social security, SAR/AFORE retirement, net salary, and the gross-from-net
// solver. Every function is a pure computation over an injected fiscal
// table; nothing here does I/O or holds state between calls.
package calc

import (
	"nomina/internal/domain/fiscal"
)

// Contribution splits a computed amount into the employer and employee sides.
type Contribution struct {
	Employer float64 `json:"employer"`
	Employee float64 `json:"employee"`
}

type Calculator struct {
	table fiscal.Table
}

func New(table fiscal.Table) *Calculator {
	return &Calculator{table: table}
}

func (c *Calculator) Table() fiscal.Table {
	return c.table
}

// ResolveBracket returns the withholding bracket containing the monthly
// taxable amount. Negative amounts resolve to the first bracket and amounts
// beyond every finite bound resolve to the open top bracket, so resolution
// never fails.
func (c *Calculator) ResolveBracket(amount float64) fiscal.TaxBracket {
	if amount < 0 {
		amount = 0
	}
	for _, b := range c.table.Brackets {
		if amount <= b.UpperBound() {
			return b
		}
	}
	return c.table.Brackets[len(c.table.Brackets)-1]
}

// Withholding computes the monthly income tax for a taxable amount: the
// bracket fee plus the marginal rate on the excess over the bracket floor,
// less the employment subsidy credit, clamped to zero.
func (c *Calculator) Withholding(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	b := c.ResolveBracket(amount)
	tax := b.Fee + (amount-b.Lower)*b.Rate/100
	tax -= c.table.SubsidyCredit(amount)
	if tax < 0 {
		return 0
	}
	return tax
}

// SocialSecurity computes monthly IMSS contributions for both sides. The
// daily contribution base is the salary divided by the table's days per
// month, capped at the configured multiple of the reference unit; each
// component's daily amount is scaled back by the same days-per-month factor.
func (c *Calculator) SocialSecurity(monthlySalary float64) Contribution {
	if monthlySalary <= 0 {
		return Contribution{}
	}

	sbc := c.table.CapDailyBase(monthlySalary)
	unit := c.table.ReferenceUnitDaily
	threshold := c.table.ExcessThresholdUnits * unit

	var employerDaily, employeeDaily float64
	for _, comp := range c.table.SocialSecurity {
		var base float64
		switch comp.Base {
		case fiscal.BaseReferenceUnit:
			base = unit
		case fiscal.BaseExcessOverCap:
			base = sbc - threshold
			if base < 0 {
				base = 0
			}
		case fiscal.BaseContribution:
			base = sbc
		}
		employerDaily += base * comp.EmployerRate / 100
		employeeDaily += base * comp.EmployeeRate / 100
	}

	return Contribution{
		Employer: employerDaily * c.table.DaysPerMonth,
		Employee: employeeDaily * c.table.DaysPerMonth,
	}
}

// Retirement computes monthly SAR/AFORE contributions on the capped monthly
// contribution base.
func (c *Calculator) Retirement(monthlySalary float64) Contribution {
	if monthlySalary <= 0 {
		return Contribution{}
	}
	base := c.table.CapDailyBase(monthlySalary) * c.table.DaysPerMonth
	return Contribution{
		Employer: base * c.table.Retirement.EmployerRate / 100,
		Employee: base * c.table.Retirement.EmployeeRate / 100,
	}
}

// Net computes take-home pay from a monthly gross salary: gross minus
// withholding and the employee-side social security and retirement
// contributions. Net is monotonically non-decreasing in gross, which the
// gross-from-net solver relies on.
func (c *Calculator) Net(monthlyGross float64) float64 {
	if monthlyGross <= 0 {
		return 0
	}
	return monthlyGross -
		c.Withholding(monthlyGross) -
		c.SocialSecurity(monthlyGross).Employee -
		c.Retirement(monthlyGross).Employee
}
