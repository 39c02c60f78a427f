// Package runner adapts the planning pipeline to the nextmv JSON runner:
// scenario tables arrive as JSON on stdin and plan results leave as JSON.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/application/dto"
	"github.com/tbadun/co327-corona-lp/pkg/application/services/model"
	"github.com/tbadun/co327-corona-lp/pkg/application/services/orchestration"
	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/domain/services"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/events"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/repositories/memory"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/solver/nextmv"
)

// Input is the JSON form of a scenario
type Input struct {
	Factories   entities.CostTable `json:"factories"`
	Respirators entities.CostTable `json:"respirators"`
	PPE         entities.CostTable `json:"ppe"`
	Resources   []string           `json:"resources"`
	Demand      []Demand           `json:"demand"`
	Shipping    []Lane             `json:"shipping"`
}

// Demand is one hospital's daily demand
type Demand struct {
	Hospital string            `json:"hospital"`
	Values   []decimal.Decimal `json:"values"`
}

// Lane is one shipping row
type Lane struct {
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Capacity    decimal.Decimal `json:"capacity"`
	Cost        decimal.Decimal `json:"cost"`
}

// Option holds the runner options, filled from flags or environment by the SDK
type Option struct {
	// A duration limit of 0 is treated as infinity
	Limits struct {
		Duration time.Duration `json:"duration" default:"10s"`
	} `json:"limits"`
	Solver struct {
		Provider string `json:"provider" default:"highs"`
	} `json:"solver"`
	Reserve struct {
		Capacity float64 `json:"capacity" default:"1e9"`
		Cost     float64 `json:"cost" default:"1e9"`
		Stock    float64 `json:"stock" default:"1e6"`
	} `json:"reserve"`
}

// Tables converts the input into the tables a model is assembled from
func (in Input) Tables() entities.Tables {
	tables := entities.Tables{
		Factories:   in.Factories,
		Respirators: in.Respirators,
		PPE:         in.PPE,
		Resources:   in.Resources,
	}
	if tables.Respirators == nil {
		tables.Respirators = entities.CostTable{}
	}
	if tables.PPE == nil {
		tables.PPE = entities.CostTable{}
	}
	for _, d := range in.Demand {
		tables.Demand = append(tables.Demand, entities.DemandRecord{Location: d.Hospital, Values: d.Values})
	}
	for _, l := range in.Shipping {
		tables.Shipping = append(tables.Shipping, entities.ShippingRecord{
			Origin: l.Origin, Destination: l.Destination, Capacity: l.Capacity, Cost: l.Cost,
		})
	}
	return tables
}

// ModelConfig returns the reserve sentinels selected by the options
func (o Option) ModelConfig() model.Config {
	return model.Config{
		ReserveCapacity: decimal.NewFromFloat(o.Reserve.Capacity),
		ReserveCost:     decimal.NewFromFloat(o.Reserve.Cost),
		ReserveStock:    decimal.NewFromFloat(o.Reserve.Stock),
	}
}

// Solve is the runner handler. It solves with the configured nextmv provider.
func Solve(input Input, opts Option) ([]dto.PlanResult, error) {
	solver := nextmv.NewSolver(nextmv.Config{Provider: opts.Solver.Provider, Duration: opts.Limits.Duration})
	return Plan(context.Background(), input, opts, solver)
}

// Plan assembles and solves one scenario with the given solver
func Plan(ctx context.Context, input Input, opts Option, solver services.Solver) ([]dto.PlanResult, error) {
	repo := memory.NewScenarioRepository()
	if err := repo.LoadTables(input.Tables()); err != nil {
		return nil, fmt.Errorf("failed to load input: %w", err)
	}

	orchestrator := orchestration.NewPlanningOrchestrator(
		model.NewAssembler(opts.ModelConfig()),
		solver,
		nil,
		events.NewInMemoryEventStore(),
	)

	run, err := orchestrator.RunPlanning(ctx, repo, orchestration.PlanOptions{Solve: true})
	if err != nil {
		return nil, err
	}
	return []dto.PlanResult{*run.Result}, nil
}
