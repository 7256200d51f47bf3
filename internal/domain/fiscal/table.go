package fiscal

import (
	"fmt"
	"math"
	"sort"
)

// Base selects what a social security component's rate applies to.
const (
	BaseReferenceUnit = "reference_unit"
	BaseExcessOverCap = "excess_over_threshold"
	BaseContribution  = "contribution_base"
)

type TaxBracket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"` // 0 means open-ended when Open is true
	Fee   float64 `json:"fee"`
	Rate  float64 `json:"rate"` // percent
	Open  bool    `json:"open,omitempty"`
}

// UpperBound returns the bracket's effective upper bound, +Inf when open.
func (b TaxBracket) UpperBound() float64 {
	if b.Open {
		return math.Inf(1)
	}
	return b.Upper
}

type SubsidyTier struct {
	UpTo   float64 `json:"upTo"`
	Credit float64 `json:"credit"`
}

type SocialSecurityComponent struct {
	Name         string  `json:"name"`
	Base         string  `json:"base"`
	EmployerRate float64 `json:"employerRate"` // percent
	EmployeeRate float64 `json:"employeeRate"` // percent
}

type RetirementRates struct {
	EmployerRate float64 `json:"employerRate"` // percent
	EmployeeRate float64 `json:"employeeRate"` // percent
}

type Currency struct {
	Code string `json:"code"`
	// Multiplier is the amount of base currency one unit buys.
	Multiplier float64 `json:"multiplier"`
}

// Table holds one fiscal year's payroll constants. Tables are immutable
// after Validate and shared freely across goroutines.
type Table struct {
	Year                 int                       `json:"year"`
	BaseCurrency         string                    `json:"baseCurrency"`
	ReferenceUnitDaily   float64                   `json:"referenceUnitDaily"`
	MinimumMonthlyWage   float64                   `json:"minimumMonthlyWage"`
	DaysPerMonth         float64                   `json:"daysPerMonth"`
	ContributionCapUnits float64                   `json:"contributionCapUnits"`
	ExcessThresholdUnits float64                   `json:"excessThresholdUnits"`
	Brackets             []TaxBracket              `json:"brackets"`
	SubsidyTiers         []SubsidyTier             `json:"subsidyTiers"`
	SocialSecurity       []SocialSecurityComponent `json:"socialSecurity"`
	Retirement           RetirementRates           `json:"retirement"`
	Currencies           []Currency                `json:"currencies"`
}

// ContributionCapMonthly is the monthly ceiling on the contribution base.
func (t Table) ContributionCapMonthly() float64 {
	return t.ContributionCapUnits * t.ReferenceUnitDaily * t.DaysPerMonth
}

// CapDailyBase converts a monthly salary to its daily contribution base,
// applying the cap. Non-positive salaries yield 0.
func (t Table) CapDailyBase(monthlySalary float64) float64 {
	if monthlySalary <= 0 {
		return 0
	}
	daily := monthlySalary / t.DaysPerMonth
	cap := t.ContributionCapUnits * t.ReferenceUnitDaily
	if daily > cap {
		return cap
	}
	return daily
}

// SubsidyCredit returns the employment subsidy for a monthly taxable amount,
// zero above the last tier.
func (t Table) SubsidyCredit(amount float64) float64 {
	for _, tier := range t.SubsidyTiers {
		if amount <= tier.UpTo {
			return tier.Credit
		}
	}
	return 0
}

// CurrencyMultiplier resolves a currency code against the table, returning
// 1 for the base currency and ok=false for unknown codes.
func (t Table) CurrencyMultiplier(code string) (float64, bool) {
	if code == "" || code == t.BaseCurrency {
		return 1, true
	}
	for _, c := range t.Currencies {
		if c.Code == code {
			return c.Multiplier, true
		}
	}
	return 0, false
}

const bracketGapTolerance = 0.02

// Validate checks structural integrity of the table: ordered contiguous
// brackets starting at 0 with an open top, ordered subsidy tiers, and
// non-negative rates throughout.
func (t Table) Validate() error {
	if t.Year <= 0 {
		return fmt.Errorf("fiscal table: year must be positive")
	}
	if t.ReferenceUnitDaily <= 0 {
		return fmt.Errorf("fiscal table %d: reference unit must be positive", t.Year)
	}
	if t.DaysPerMonth <= 0 {
		return fmt.Errorf("fiscal table %d: days per month must be positive", t.Year)
	}
	if t.ContributionCapUnits <= 0 {
		return fmt.Errorf("fiscal table %d: contribution cap must be positive", t.Year)
	}
	if t.MinimumMonthlyWage < 0 {
		return fmt.Errorf("fiscal table %d: minimum wage must not be negative", t.Year)
	}

	if len(t.Brackets) == 0 {
		return fmt.Errorf("fiscal table %d: no tax brackets", t.Year)
	}
	if t.Brackets[0].Lower > bracketGapTolerance {
		return fmt.Errorf("fiscal table %d: first bracket must start at 0", t.Year)
	}
	for i, b := range t.Brackets {
		if b.Rate < 0 || b.Fee < 0 {
			return fmt.Errorf("fiscal table %d: bracket %d has negative fee or rate", t.Year, i)
		}
		last := i == len(t.Brackets)-1
		if last {
			if !b.Open {
				return fmt.Errorf("fiscal table %d: last bracket must be open-ended", t.Year)
			}
			continue
		}
		if b.Open {
			return fmt.Errorf("fiscal table %d: bracket %d is open but not last", t.Year, i)
		}
		if b.Upper <= b.Lower {
			return fmt.Errorf("fiscal table %d: bracket %d bounds out of order", t.Year, i)
		}
		next := t.Brackets[i+1]
		if gap := next.Lower - b.Upper; gap < 0 || gap > bracketGapTolerance {
			return fmt.Errorf("fiscal table %d: gap between brackets %d and %d", t.Year, i, i+1)
		}
	}

	if !sort.SliceIsSorted(t.SubsidyTiers, func(i, j int) bool {
		return t.SubsidyTiers[i].UpTo < t.SubsidyTiers[j].UpTo
	}) {
		return fmt.Errorf("fiscal table %d: subsidy tiers out of order", t.Year)
	}
	for i, tier := range t.SubsidyTiers {
		if tier.UpTo < 0 || tier.Credit < 0 {
			return fmt.Errorf("fiscal table %d: subsidy tier %d has negative values", t.Year, i)
		}
	}

	for i, c := range t.SocialSecurity {
		switch c.Base {
		case BaseReferenceUnit, BaseExcessOverCap, BaseContribution:
		default:
			return fmt.Errorf("fiscal table %d: component %d has unknown base %q", t.Year, i, c.Base)
		}
		if c.EmployerRate < 0 || c.EmployeeRate < 0 {
			return fmt.Errorf("fiscal table %d: component %d has negative rate", t.Year, i)
		}
	}
	if t.Retirement.EmployerRate < 0 || t.Retirement.EmployeeRate < 0 {
		return fmt.Errorf("fiscal table %d: negative retirement rate", t.Year)
	}
	for _, c := range t.Currencies {
		if c.Code == "" || c.Multiplier <= 0 {
			return fmt.Errorf("fiscal table %d: invalid currency entry %q", t.Year, c.Code)
		}
	}
	return nil
}
