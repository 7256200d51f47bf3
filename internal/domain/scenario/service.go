package scenario

import (
	"context"
	"time"

	"github.com/google/uuid"

	"nomina/internal/domain/calc"
	"nomina/internal/domain/fiscal"
	"nomina/internal/domain/overhead"
)

type Service struct {
	store    Storer
	registry *fiscal.Registry
}

func NewService(store Storer, registry *fiscal.Registry) *Service {
	return &Service{store: store, registry: registry}
}

type CreateParams struct {
	Name       string
	FiscalYear int
	Currency   string
	Dispersion overhead.Dispersion
}

func (s *Service) Create(ctx context.Context, p CreateParams) (Scenario, error) {
	table, ok := s.registry.Table(p.FiscalYear)
	if !ok {
		return Scenario{}, ErrUnknownYear
	}
	if _, ok := table.CurrencyMultiplier(p.Currency); !ok {
		return Scenario{}, ErrUnknownCurrency
	}
	if p.Dispersion.BaseIncluded < 1 {
		p.Dispersion.BaseIncluded = 1
	}
	if p.Dispersion.Additional < 0 {
		p.Dispersion.Additional = 0
	}
	if p.Dispersion.FeePercent < 0 {
		p.Dispersion.FeePercent = 0
	}

	sc := Scenario{
		ID:         uuid.NewString(),
		Name:       p.Name,
		FiscalYear: p.FiscalYear,
		Currency:   p.Currency,
		Dispersion: p.Dispersion,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Create(ctx, sc); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func (s *Service) Get(ctx context.Context, id string) (Scenario, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]ScenarioSummary, error) {
	return s.store.List(ctx)
}

// Update normalizes the incoming snapshot before storing it: salaries are
// clamped to the fiscal year's wage floor, item values are clamped to 0,
// and unknown item enums or currency codes are rejected.
func (s *Service) Update(ctx context.Context, sc Scenario) error {
	table, ok := s.registry.Table(sc.FiscalYear)
	if !ok {
		return ErrUnknownYear
	}
	if _, ok := table.CurrencyMultiplier(sc.Currency); !ok {
		return ErrUnknownCurrency
	}
	for i := range sc.Employees {
		emp := &sc.Employees[i]
		if emp.ID == "" {
			emp.ID = uuid.NewString()
		}
		emp.MonthlySalary = overhead.ClampSalary(emp.MonthlySalary, table.MinimumMonthlyWage)
		items, err := overhead.SanitizeItems(emp.Items)
		if err != nil {
			return err
		}
		emp.Items = items
	}
	return s.store.Update(ctx, sc)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

type AddEmployeeParams struct {
	Name          string
	MonthlySalary float64
	Items         []overhead.Item
}

// AddEmployee appends an employee to the scenario, applying the default
// line-item template when none is given and the fiscal year's wage clamp.
func (s *Service) AddEmployee(ctx context.Context, scenarioID string, p AddEmployeeParams) (overhead.Employee, error) {
	sc, err := s.store.Get(ctx, scenarioID)
	if err != nil {
		return overhead.Employee{}, err
	}
	table, ok := s.registry.Table(sc.FiscalYear)
	if !ok {
		return overhead.Employee{}, ErrUnknownYear
	}

	items := p.Items
	if len(items) == 0 {
		items = overhead.DefaultItems()
	} else {
		items, err = overhead.SanitizeItems(items)
		if err != nil {
			return overhead.Employee{}, err
		}
	}
	emp := overhead.NewEmployee(p.Name, p.MonthlySalary, items, table.MinimumMonthlyWage)

	sc.Employees = append(sc.Employees, emp)
	if err := s.store.Update(ctx, sc); err != nil {
		return overhead.Employee{}, err
	}
	return emp, nil
}

func (s *Service) RemoveEmployee(ctx context.Context, scenarioID, employeeID string) error {
	sc, err := s.store.Get(ctx, scenarioID)
	if err != nil {
		return err
	}
	kept := sc.Employees[:0]
	found := false
	for _, emp := range sc.Employees {
		if emp.ID == employeeID {
			found = true
			continue
		}
		kept = append(kept, emp)
	}
	if !found {
		return ErrEmployeeNotFound
	}
	sc.Employees = kept
	return s.store.Update(ctx, sc)
}

// Result recomputes the full scenario outcome from scratch.
func (s *Service) Result(ctx context.Context, id string) (Result, error) {
	sc, err := s.store.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return s.Compute(sc)
}

// Compute derives the result for an already-loaded scenario.
func (s *Service) Compute(sc Scenario) (Result, error) {
	table, ok := s.registry.Table(sc.FiscalYear)
	if !ok {
		return Result{}, ErrUnknownYear
	}
	calculator := calc.New(table)

	result := Result{
		ScenarioID: sc.ID,
		FiscalYear: sc.FiscalYear,
		Currency:   sc.Currency,
		Employees:  make([]overhead.Breakdown, 0, len(sc.Employees)),
	}
	for _, emp := range sc.Employees {
		result.Employees = append(result.Employees, overhead.EmployeeBreakdown(calculator, emp))
	}
	result.Summary = overhead.OrganizationTotal(calculator, sc.Employees, sc.GroupItems, sc.Dispersion)
	return result, nil
}

// Table resolves the fiscal table backing a scenario.
func (s *Service) Table(sc Scenario) (fiscal.Table, error) {
	table, ok := s.registry.Table(sc.FiscalYear)
	if !ok {
		return fiscal.Table{}, ErrUnknownYear
	}
	return table, nil
}
