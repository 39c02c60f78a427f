package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/application/services/model"
	"github.com/tbadun/co327-corona-lp/pkg/application/services/orchestration"
	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/events"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/repositories/memory"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/solver/nextmv"
	"github.com/tbadun/co327-corona-lp/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	// Set up a small regional network
	repo := memory.NewScenarioRepository()
	if err := repo.LoadTables(regionalTables()); err != nil {
		fmt.Printf("Error loading tables: %v\n", err)
		os.Exit(1)
	}

	// Assemble with the default reserve sentinels
	assembler := model.NewAssembler(model.DefaultConfig())
	solver := nextmv.NewSolver(nextmv.Config{Provider: nextmv.DefaultProvider})
	orchestrator := orchestration.NewPlanningOrchestrator(assembler, solver, nil, events.NewInMemoryEventStore())

	fmt.Println("🚀 Planning PPE and ventilator supply for two hospitals...")

	run, err := orchestrator.RunPlanning(ctx, repo, orchestration.PlanOptions{Solve: true})
	if run == nil {
		fmt.Printf("Error assembling model: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		// The model is still reported when no solver plugin is available
		fmt.Printf("⚠️  Solve failed: %v\n\n", err)
	}

	output.WriteText(os.Stdout, run.Result, 0)

	fmt.Println("🔢 Variables by kind:")
	for kind, count := range run.Result.Stats.ByKind {
		fmt.Printf("  %-15s %d\n", kind, count)
	}
}

func regionalTables() entities.Tables {
	d := decimal.NewFromInt

	return entities.Tables{
		Factories: entities.CostTable{
			"northplant": {"cloth": d(40), "metal": d(30), "mask": d(0), "vent": d(0)},
			"southplant": {"cloth": d(20), "gown": d(0)},
		},
		Respirators: entities.CostTable{
			"vent": {"metal": d(3), "cloth": d(1)},
		},
		PPE: entities.CostTable{
			"mask": {"cloth": d(1)},
			"gown": {"cloth": d(2)},
		},
		Resources: []string{"metal", "cloth"},
		Demand: []entities.DemandRecord{
			{Location: "stmarys", Values: []decimal.Decimal{d(0), d(4), d(6)}},
			{Location: "general", Values: []decimal.Decimal{d(0), d(2), d(2)}},
		},
		Shipping: []entities.ShippingRecord{
			{Origin: "northplant", Destination: "stmarys", Capacity: d(20), Cost: d(3)},
			{Origin: "southplant", Destination: "northplant", Capacity: d(15), Cost: d(1)},
			{Origin: "southplant", Destination: "general", Capacity: d(10), Cost: d(4)},
			{Origin: "stmarys", Destination: "general", Capacity: d(5), Cost: d(1)},
		},
	}
}
