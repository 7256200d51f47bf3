package scenario

import "context"

type Storer interface {
	Create(ctx context.Context, sc Scenario) error
	Get(ctx context.Context, id string) (Scenario, error)
	List(ctx context.Context) ([]ScenarioSummary, error)
	Update(ctx context.Context, sc Scenario) error
	Delete(ctx context.Context, id string) error
}
