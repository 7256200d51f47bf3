// Package overhead models employer cost line items and aggregates them per
// employee and per organization on top of the calc package.
package overhead

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Item kinds. Computed items ignore Value and dispatch to a calculator.
const (
	KindFixed         = "fixed"
	KindPercent       = "percent"
	KindAnnualPercent = "annual_percent"
	KindCappedPercent = "capped_percent"
	KindDays          = "days"
	KindComputed      = "computed"
)

// Calculator references for computed items.
const (
	CalcWithholding            = "withholding"
	CalcSocialSecurityEmployer = "social_security_employer"
	CalcSocialSecurityEmployee = "social_security_employee"
	CalcRetirementEmployer     = "retirement_employer"
	CalcRetirementEmployee     = "retirement_employee"
)

// Item categories. Every non-salary line item belongs to exactly one.
const (
	CategoryBenefit           = "benefit"
	CategoryBonus             = "bonus"
	CategoryEmployerRetention = "employer_retention"
	CategoryEmployeeRetention = "employee_retention"
)

type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Value    float64 `json:"value"`
	Category string  `json:"category"`
	Calc     string  `json:"calc,omitempty"`
}

// NewItem builds a user-editable line item, clamping negative values to 0.
func NewItem(name, kind, category string, value float64) Item {
	if value < 0 {
		value = 0
	}
	return Item{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     kind,
		Value:    value,
		Category: category,
	}
}

// NewComputedItem builds a calculator-backed line item. Its cost comes from
// the referenced calculator, never from a stored value.
func NewComputedItem(name, category, calcRef string) Item {
	return Item{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     KindComputed,
		Category: category,
		Calc:     calcRef,
	}
}

var ErrInvalidItem = errors.New("invalid overhead item")

// Validate checks the enum fields: the kind must be known, computed items
// must reference a known calculator, and every item needs a known category.
func (i Item) Validate() error {
	switch i.Kind {
	case KindFixed, KindPercent, KindAnnualPercent, KindCappedPercent, KindDays:
	case KindComputed:
		switch i.Calc {
		case CalcWithholding, CalcSocialSecurityEmployer, CalcSocialSecurityEmployee,
			CalcRetirementEmployer, CalcRetirementEmployee:
		default:
			return fmt.Errorf("%w: %q references unknown calculator %q", ErrInvalidItem, i.Name, i.Calc)
		}
	default:
		return fmt.Errorf("%w: %q has unknown kind %q", ErrInvalidItem, i.Name, i.Kind)
	}
	switch i.Category {
	case CategoryBenefit, CategoryBonus, CategoryEmployerRetention, CategoryEmployeeRetention:
	default:
		return fmt.Errorf("%w: %q has unknown category %q", ErrInvalidItem, i.Name, i.Category)
	}
	return nil
}

// SanitizeItems prepares externally supplied items for storage: values are
// clamped to 0, missing ids are assigned, and the first enum violation is
// returned as an error wrapping ErrInvalidItem.
func SanitizeItems(items []Item) ([]Item, error) {
	out := make([]Item, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if item.Value < 0 {
			item.Value = 0
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		out[i] = item
	}
	return out, nil
}

// DefaultItems returns the standard Mexican employer cost template: the
// mandatory computed categories plus aguinaldo, vacation premium and the
// Infonavit housing fund.
func DefaultItems() []Item {
	return []Item{
		NewComputedItem("ISR withholding", CategoryEmployeeRetention, CalcWithholding),
		NewComputedItem("IMSS employer", CategoryEmployerRetention, CalcSocialSecurityEmployer),
		NewComputedItem("IMSS employee", CategoryEmployeeRetention, CalcSocialSecurityEmployee),
		NewComputedItem("Retirement employer", CategoryEmployerRetention, CalcRetirementEmployer),
		NewComputedItem("Retirement employee", CategoryEmployeeRetention, CalcRetirementEmployee),
		NewItem("Aguinaldo", KindDays, CategoryBonus, 15),
		NewItem("Vacation premium", KindDays, CategoryBenefit, 3),
		NewItem("Housing fund", KindCappedPercent, CategoryEmployerRetention, 5),
	}
}
