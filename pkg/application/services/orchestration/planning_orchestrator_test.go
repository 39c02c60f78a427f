package orchestration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbadun/co327-corona-lp/pkg/application/services/model"
	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/events"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/repositories/memory"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/repositories/sqlite"
	testhelpers "github.com/tbadun/co327-corona-lp/pkg/infrastructure/testing"
)

const testRunID = "run-1"

type fakeSolver struct {
	solution *entities.Solution
	err      error
	calls    int
}

func (f *fakeSolver) Solve(_ context.Context, _ *entities.Model) (*entities.Solution, error) {
	f.calls++
	return f.solution, f.err
}

func newTestOrchestrator(solver *fakeSolver, store *events.InMemoryEventStore) *PlanningOrchestrator {
	po := NewPlanningOrchestrator(model.NewAssembler(model.DefaultConfig()), nil, nil, nil)
	if solver != nil {
		po.solver = solver
	}
	if store != nil {
		po.eventStore = store
	}
	po.newRunID = func() string { return testRunID }
	po.now = func() time.Time { return time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC) }
	return po
}

func eventTypes(t *testing.T, store *events.InMemoryEventStore) []string {
	t.Helper()
	recorded, err := store.ReadEvents(testRunID, 0)
	require.NoError(t, err)
	types := make([]string, len(recorded))
	for i, e := range recorded {
		types[i] = e.Type()
	}
	return types
}

func TestPlanningOrchestrator_AssembleOnly(t *testing.T) {
	store := events.NewInMemoryEventStore()
	po := newTestOrchestrator(nil, store)
	repo := testhelpers.LoadScenarioRepository(testhelpers.BuildRegionalScenario())

	run, err := po.RunPlanning(context.Background(), repo, PlanOptions{})
	require.NoError(t, err)

	assert.Equal(t, testRunID, run.Result.RunID)
	assert.Equal(t, "assembled", run.Result.Status)
	assert.False(t, run.Result.Solved())
	assert.Equal(t, 4, run.Result.Horizon)
	assert.Equal(t, len(run.Assembly.Model.Variables), run.Result.Stats.Variables)
	require.Len(t, run.Result.Duplicates, 1)
	assert.Equal(t, "northplant->stmarys", run.Result.Duplicates[0].Lane)
	assert.Equal(t, "3", run.Result.Duplicates[0].KeptCost)
	assert.Equal(t, "5", run.Result.Duplicates[0].DiscardedCost)

	assert.Equal(t, []string{events.TopologyBuiltEvent, events.ModelAssembledEvent}, eventTypes(t, store))
}

func TestPlanningOrchestrator_InvalidTables(t *testing.T) {
	store := events.NewInMemoryEventStore()
	solver := &fakeSolver{}
	po := newTestOrchestrator(solver, store)

	tables := testhelpers.BuildSingleResourceScenario(5)
	tables.Shipping = append(tables.Shipping, entities.ShippingRecord{
		Origin: "factoryA", Destination: "nowhere", Capacity: testhelpers.D(1), Cost: testhelpers.D(1),
	})

	run, err := po.RunPlanning(context.Background(), testhelpers.LoadScenarioRepository(tables), PlanOptions{Solve: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrUnknownLocation)
	assert.Nil(t, run)
	assert.Zero(t, solver.calls, "solver must not run on a failed assembly")
	assert.Equal(t, []string{events.PlanningFailedEvent}, eventTypes(t, store))
}

func TestPlanningOrchestrator_EmptyScenario(t *testing.T) {
	po := newTestOrchestrator(nil, nil)

	_, err := po.RunPlanning(context.Background(), memory.NewScenarioRepository(), PlanOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load scenario")
}

func TestPlanningOrchestrator_ExportToSQLite(t *testing.T) {
	modelStore, err := sqlite.NewModelStore(filepath.Join(t.TempDir(), "models.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = modelStore.Close() })

	store := events.NewInMemoryEventStore()
	po := newTestOrchestrator(nil, store)
	po.modelRepo = modelStore

	repo := testhelpers.LoadScenarioRepository(testhelpers.BuildSingleResourceScenario(0, 5))
	run, err := po.RunPlanning(context.Background(), repo, PlanOptions{Export: true})
	require.NoError(t, err)

	assert.Equal(t, modelStore.Path(), run.Result.ExportPath)

	runs, err := modelStore.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, testRunID, runs[0].RunID)
	assert.Equal(t, len(run.Assembly.Model.Variables), runs[0].Variables)
	assert.Equal(t, run.Assembly.Model.Coefficients.Len(), runs[0].Coefficients)

	assert.Equal(t, []string{
		events.TopologyBuiltEvent,
		events.ModelAssembledEvent,
		events.ModelExportedEvent,
	}, eventTypes(t, store))
}

func TestPlanningOrchestrator_ExportWithoutRepository(t *testing.T) {
	store := events.NewInMemoryEventStore()
	po := newTestOrchestrator(nil, store)

	repo := testhelpers.LoadScenarioRepository(testhelpers.BuildSingleResourceScenario(5))
	run, err := po.RunPlanning(context.Background(), repo, PlanOptions{Export: true})
	require.Error(t, err)
	require.NotNil(t, run)
	assert.Empty(t, run.Result.ExportPath)
	assert.Contains(t, eventTypes(t, store), events.PlanningFailedEvent)
}

func TestPlanningOrchestrator_SolveWithoutSolver(t *testing.T) {
	po := newTestOrchestrator(nil, nil)

	repo := testhelpers.LoadScenarioRepository(testhelpers.BuildSingleResourceScenario(5))
	_, err := po.RunPlanning(context.Background(), repo, PlanOptions{Solve: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no solver configured")
}

func TestPlanningOrchestrator_SolverError(t *testing.T) {
	store := events.NewInMemoryEventStore()
	solver := &fakeSolver{err: errors.New("plugin not found")}
	po := newTestOrchestrator(solver, store)

	repo := testhelpers.LoadScenarioRepository(testhelpers.BuildSingleResourceScenario(5))
	run, err := po.RunPlanning(context.Background(), repo, PlanOptions{Solve: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrSolveFailed)
	assert.Contains(t, err.Error(), "plugin not found")
	assert.Equal(t, 1, solver.calls)
	assert.Equal(t, "assembled", run.Result.Status)
	assert.Contains(t, eventTypes(t, store), events.PlanningFailedEvent)
}

func TestPlanningOrchestrator_Infeasible(t *testing.T) {
	store := events.NewInMemoryEventStore()
	solver := &fakeSolver{solution: &entities.Solution{
		Status:     entities.Infeasible,
		Diagnostic: "primal infeasible",
	}}
	po := newTestOrchestrator(solver, store)

	repo := testhelpers.LoadScenarioRepository(testhelpers.BuildSingleResourceScenario(5))
	run, err := po.RunPlanning(context.Background(), repo, PlanOptions{Solve: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrSolveFailed)
	assert.Contains(t, err.Error(), "infeasible")
	assert.Contains(t, err.Error(), "primal infeasible")

	assert.Equal(t, "infeasible", run.Result.Status)
	assert.Equal(t, "primal infeasible", run.Result.Diagnostic)
	assert.Empty(t, run.Result.Production)

	types := eventTypes(t, store)
	assert.Equal(t, events.SolveFailedEvent, types[len(types)-1])
}

func TestPlanningOrchestrator_Optimal(t *testing.T) {
	lane := entities.EdgeID{Origin: "factoryA", Destination: "hospital1"}
	reserveLane := entities.EdgeID{Origin: entities.ReserveName, Destination: "hospital1"}
	seed := entities.SeedVar("vent", reserveLane)

	values := map[entities.VarKey]float64{
		entities.ProductionVar(entities.Respirators, "vent", "factoryA", 1): 3,
		entities.ShippedVar("vent", lane, 1):                                3,
		entities.TotalShippedVar(lane, 1):                                   3,
		seed:                                                                5,
		// below tolerance, must not be reported
		entities.ShippedVar("plastic", lane, 1): 1e-9,
	}

	store := events.NewInMemoryEventStore()
	solver := &fakeSolver{solution: &entities.Solution{
		Status:         entities.Optimal,
		ObjectiveValue: 42,
		Values:         values,
		RunTime:        time.Second,
	}}
	po := newTestOrchestrator(solver, store)

	repo := testhelpers.LoadScenarioRepository(testhelpers.BuildSingleResourceScenario(5))
	run, err := po.RunPlanning(context.Background(), repo, PlanOptions{Solve: true})
	require.NoError(t, err)

	result := run.Result
	assert.True(t, result.Solved())
	assert.Equal(t, "optimal", result.Status)
	assert.Equal(t, 42.0, result.Objective)
	assert.Equal(t, time.Second, result.RunTime)

	require.Len(t, result.Production, 1)
	assert.Equal(t, "vent", result.Production[0].Equipment)
	assert.Equal(t, "factoryA", result.Production[0].Factory)
	assert.Equal(t, 1, result.Production[0].Day)
	assert.Equal(t, 3.0, result.Production[0].Quantity)

	require.Len(t, result.Shipments, 1)
	assert.Equal(t, "vent", result.Shipments[0].Material)
	assert.Equal(t, "factoryA", result.Shipments[0].Origin)

	require.Len(t, result.Reserve, 1)
	assert.Equal(t, 0, result.Reserve[0].Day)
	assert.Equal(t, "hospital1", result.Reserve[0].Destination)
	assert.Equal(t, 5.0, result.ReserveUnits)

	// the seed covers day-1 demand, but on-hand rows were left unset
	assert.NotContains(t, result.Violations, entities.DemandKey(entities.Respirators, "hospital1", 1).String())
	assert.Contains(t, result.Violations, entities.OnHandKey("plastic", "factoryA", 1).String())

	types := eventTypes(t, store)
	assert.Equal(t, events.SolveCompletedEvent, types[len(types)-1])

	recorded, err := store.ReadEvents(testRunID, 0)
	require.NoError(t, err)
	completed, ok := recorded[len(recorded)-1].Data().(events.SolveCompleted)
	require.True(t, ok)
	assert.Equal(t, 5.0, completed.ReserveUnits)
	assert.Equal(t, len(result.Violations), completed.Violations)
}
