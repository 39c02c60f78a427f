package orchestration

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tbadun/co327-corona-lp/pkg/application/dto"
	"github.com/tbadun/co327-corona-lp/pkg/application/services/model"
	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/domain/repositories"
	"github.com/tbadun/co327-corona-lp/pkg/domain/services"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/events"
)

// PlanOptions selects the optional stages of a planning run
type PlanOptions struct {
	// Export writes the assembled model to the model repository
	Export bool
	// Solve hands the model to the solver and verifies the returned plan
	Solve bool
}

// PlanningOrchestrator coordinates model assembly, export, solving and verification
type PlanningOrchestrator struct {
	assembler  *model.Assembler
	solver     services.Solver
	modelRepo  repositories.ModelRepository
	eventStore events.EventStore
	tolerance  float64
	newRunID   func() string
	now        func() time.Time
}

// NewPlanningOrchestrator creates a new planning orchestrator. The solver,
// model repository and event store are optional.
func NewPlanningOrchestrator(
	assembler *model.Assembler,
	solver services.Solver,
	modelRepo repositories.ModelRepository,
	eventStore events.EventStore,
) *PlanningOrchestrator {
	return &PlanningOrchestrator{
		assembler:  assembler,
		solver:     solver,
		modelRepo:  modelRepo,
		eventStore: eventStore,
		tolerance:  services.DefaultTolerance,
		newRunID:   uuid.NewString,
		now:        time.Now,
	}
}

// PlanningRun is the result of a run together with the model it solved
type PlanningRun struct {
	Result   *dto.PlanResult
	Assembly *model.Assembly
}

// RunPlanning assembles the model for the scenario and runs the selected stages.
// Assembly failure stops the run before anything is exported or solved. A
// solver error or a non-optimal status is returned wrapped in ErrSolveFailed,
// alongside the partial result.
func (po *PlanningOrchestrator) RunPlanning(
	ctx context.Context,
	scenarioRepo repositories.ScenarioRepository,
	options PlanOptions,
) (*PlanningRun, error) {
	runID := po.newRunID()

	tables, err := scenarioRepo.GetTables()
	if err != nil {
		return nil, po.fail(runID, "load", fmt.Errorf("failed to load scenario: %w", err))
	}

	assembly, err := po.assembler.Assemble(tables)
	if err != nil {
		return nil, po.fail(runID, "assemble", fmt.Errorf("failed to assemble model: %w", err))
	}
	po.recordAssembly(runID, assembly)

	result := &dto.PlanResult{
		RunID:      runID,
		PlannedAt:  po.now(),
		Status:     "assembled",
		Stats:      assembly.Model.Stats(),
		Horizon:    assembly.Topology.Horizon,
		Duplicates: duplicateLanes(assembly.Topology),
	}
	run := &PlanningRun{Result: result, Assembly: assembly}

	if options.Export {
		if po.modelRepo == nil {
			return run, po.fail(runID, "export", fmt.Errorf("no model repository configured"))
		}
		if err := po.modelRepo.SaveModel(ctx, runID, assembly.Model); err != nil {
			return run, po.fail(runID, "export", fmt.Errorf("failed to export model: %w", err))
		}
		result.ExportPath = exportLocation(po.modelRepo)
		po.record(events.NewModelExportedEvent(runID, result.ExportPath))
	}

	if !options.Solve {
		return run, nil
	}
	if po.solver == nil {
		return run, po.fail(runID, "solve", fmt.Errorf("no solver configured"))
	}

	solution, err := po.solver.Solve(ctx, assembly.Model)
	if err != nil {
		return run, po.fail(runID, "solve", fmt.Errorf("%w: %w", entities.ErrSolveFailed, err))
	}

	result.Status = solution.Status.String()
	result.Diagnostic = solution.Diagnostic
	result.RunTime = solution.RunTime

	if solution.Status != entities.Optimal {
		po.record(events.NewSolveFailedEvent(runID, result.Status, solution.Diagnostic))
		return run, fmt.Errorf("%w: status %s: %s", entities.ErrSolveFailed, solution.Status, solution.Diagnostic)
	}

	po.interpret(result, assembly, solution)
	po.record(events.NewSolveCompletedEvent(runID, events.SolveCompleted{
		Status:       result.Status,
		Objective:    result.Objective,
		RunTime:      result.RunTime,
		ReserveUnits: result.ReserveUnits,
		Violations:   len(result.Violations),
	}))

	return run, nil
}

// interpret reads production, shipments and reserve usage off the solution
// and re-checks every row against the returned values
func (po *PlanningOrchestrator) interpret(result *dto.PlanResult, assembly *model.Assembly, solution *entities.Solution) {
	result.Objective = solution.ObjectiveValue

	for _, v := range assembly.Model.Variables {
		qty := solution.Value(v)
		if qty <= po.tolerance {
			continue
		}
		switch {
		case v.Kind.IsProduction():
			result.Production = append(result.Production, dto.ProductionLine{
				Equipment: v.Item, Factory: v.Origin, Day: v.Day, Quantity: qty,
			})
		case v.Kind == entities.Shipped:
			result.Shipments = append(result.Shipments, dto.ShipmentLine{
				Material: v.Item, Origin: v.Origin, Destination: v.Destination, Day: v.Day, Quantity: qty,
			})
			if v.Origin == entities.ReserveName {
				result.Reserve = append(result.Reserve, dto.ReserveLine{
					Equipment: v.Item, Destination: v.Destination, Day: v.Day, Quantity: qty,
				})
				result.ReserveUnits += qty
			}
		case v.Kind == entities.ReserveSeed:
			result.Reserve = append(result.Reserve, dto.ReserveLine{
				Equipment: v.Item, Destination: v.Destination, Day: 0, Quantity: qty,
			})
			result.ReserveUnits += qty
		}
	}

	evaluator := services.NewEvaluator(assembly.Model, po.tolerance)
	for _, violation := range evaluator.Violations(solution.Values) {
		result.Violations = append(result.Violations, violation.Name())
	}
}

func (po *PlanningOrchestrator) recordAssembly(runID string, assembly *model.Assembly) {
	topo := assembly.Topology
	po.record(events.NewTopologyBuiltEvent(runID, events.TopologyBuilt{
		Locations:  len(topo.Locations),
		Edges:      len(topo.Edges),
		Materials:  len(topo.Materials),
		Horizon:    topo.Horizon,
		Duplicates: len(topo.Duplicates),
	}))

	stats := assembly.Model.Stats()
	po.record(events.NewModelAssembledEvent(runID, events.ModelAssembled{
		Variables:    stats.Variables,
		UpperBounds:  stats.UpperBounds,
		Equalities:   stats.Equalities,
		Coefficients: stats.Coefficients,
		CostTerms:    stats.CostTerms,
	}))
}

func (po *PlanningOrchestrator) fail(runID, stage string, err error) error {
	po.record(events.NewPlanningFailedEvent(runID, stage, err))
	return err
}

// record appends to the event store when one is configured. Event delivery
// problems never fail a planning run.
func (po *PlanningOrchestrator) record(event events.Event) {
	if po.eventStore == nil {
		return
	}
	if err := po.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		log.Printf("failed to record %s event: %v", event.Type(), err)
	}
}

func duplicateLanes(topo *model.Topology) []dto.DuplicateLane {
	var lanes []dto.DuplicateLane
	for _, d := range topo.Duplicates {
		lanes = append(lanes, dto.DuplicateLane{
			Lane:          d.Kept.ID().String(),
			KeptCost:      d.Kept.Cost.String(),
			DiscardedCost: d.Discarded.Cost.String(),
		})
	}
	return lanes
}

// exportLocation names where a repository persists models, when it has a location
func exportLocation(repo repositories.ModelRepository) string {
	if located, ok := repo.(interface{ Path() string }); ok {
		return located.Path()
	}
	return ""
}
