package scenario

import (
	"time"

	"nomina/internal/domain/overhead"
)

// Scenario is a named organization snapshot: the employees, shared cost
// items and dispersion settings to run the calculators against. Results are
// always derived on demand, never stored.
type Scenario struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	FiscalYear int                  `json:"fiscalYear"`
	Currency   string               `json:"currency"`
	Dispersion overhead.Dispersion  `json:"dispersion"`
	Employees  []overhead.Employee  `json:"employees"`
	GroupItems []overhead.GroupItem `json:"groupItems"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

type ScenarioSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	FiscalYear    int       `json:"fiscalYear"`
	Currency      string    `json:"currency"`
	EmployeeCount int       `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Result is the full recomputed outcome for a scenario.
type Result struct {
	ScenarioID string               `json:"scenarioId"`
	FiscalYear int                  `json:"fiscalYear"`
	Currency   string               `json:"currency"`
	Employees  []overhead.Breakdown `json:"employees"`
	Summary    overhead.Summary     `json:"summary"`
}
