package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nomina/internal/domain/overhead"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, sc Scenario) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO scenarios (id, name, fiscal_year, currency, dispersion_base, dispersion_additional, dispersion_fee_percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, sc.ID, sc.Name, sc.FiscalYear, sc.Currency,
		sc.Dispersion.BaseIncluded, sc.Dispersion.Additional, sc.Dispersion.FeePercent, sc.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertChildren(ctx, tx, sc); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) Get(ctx context.Context, id string) (Scenario, error) {
	var sc Scenario
	err := s.DB.QueryRow(ctx, `
		SELECT id, name, fiscal_year, currency, dispersion_base, dispersion_additional, dispersion_fee_percent, created_at, updated_at
		FROM scenarios WHERE id = $1
	`, id).Scan(&sc.ID, &sc.Name, &sc.FiscalYear, &sc.Currency,
		&sc.Dispersion.BaseIncluded, &sc.Dispersion.Additional, &sc.Dispersion.FeePercent,
		&sc.CreatedAt, &sc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Scenario{}, ErrNotFound
	}
	if err != nil {
		return Scenario{}, err
	}

	rows, err := s.DB.Query(ctx, `
		SELECT id, name, monthly_salary, items
		FROM scenario_employees WHERE scenario_id = $1 ORDER BY position
	`, id)
	if err != nil {
		return Scenario{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var emp overhead.Employee
		var itemsJSON []byte
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.MonthlySalary, &itemsJSON); err != nil {
			return Scenario{}, err
		}
		if len(itemsJSON) > 0 {
			if err := json.Unmarshal(itemsJSON, &emp.Items); err != nil {
				return Scenario{}, err
			}
		}
		sc.Employees = append(sc.Employees, emp)
	}
	if err := rows.Err(); err != nil {
		return Scenario{}, err
	}

	groupRows, err := s.DB.Query(ctx, `
		SELECT id, name, market_value
		FROM scenario_group_items WHERE scenario_id = $1 ORDER BY position
	`, id)
	if err != nil {
		return Scenario{}, err
	}
	defer groupRows.Close()
	for groupRows.Next() {
		var item overhead.GroupItem
		if err := groupRows.Scan(&item.ID, &item.Name, &item.MarketValue); err != nil {
			return Scenario{}, err
		}
		sc.GroupItems = append(sc.GroupItems, item)
	}
	return sc, groupRows.Err()
}

func (s *Store) List(ctx context.Context) ([]ScenarioSummary, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT s.id, s.name, s.fiscal_year, s.currency,
		       (SELECT COUNT(1) FROM scenario_employees e WHERE e.scenario_id = s.id),
		       s.created_at
		FROM scenarios s ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]ScenarioSummary, 0, 8)
	for rows.Next() {
		var sm ScenarioSummary
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.FiscalYear, &sm.Currency, &sm.EmployeeCount, &sm.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, sm)
	}
	return summaries, rows.Err()
}

// Update rewrites the scenario row and replaces its children wholesale. A
// scenario is small enough that replacing beats diffing.
func (s *Store) Update(ctx context.Context, sc Scenario) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE scenarios
		SET name = $2, fiscal_year = $3, currency = $4,
		    dispersion_base = $5, dispersion_additional = $6, dispersion_fee_percent = $7,
		    updated_at = $8
		WHERE id = $1
	`, sc.ID, sc.Name, sc.FiscalYear, sc.Currency,
		sc.Dispersion.BaseIncluded, sc.Dispersion.Additional, sc.Dispersion.FeePercent, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM scenario_employees WHERE scenario_id = $1", sc.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM scenario_group_items WHERE scenario_id = $1", sc.ID); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, sc); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM scenarios WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertChildren(ctx context.Context, tx pgx.Tx, sc Scenario) error {
	for i, emp := range sc.Employees {
		itemsJSON, err := json.Marshal(emp.Items)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO scenario_employees (id, scenario_id, position, name, monthly_salary, items)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, emp.ID, sc.ID, i, emp.Name, emp.MonthlySalary, itemsJSON)
		if err != nil {
			return err
		}
	}
	for i, item := range sc.GroupItems {
		_, err := tx.Exec(ctx, `
			INSERT INTO scenario_group_items (id, scenario_id, position, name, market_value)
			VALUES ($1, $2, $3, $4, $5)
		`, item.ID, sc.ID, i, item.Name, item.MarketValue)
		if err != nil {
			return err
		}
	}
	return nil
}
