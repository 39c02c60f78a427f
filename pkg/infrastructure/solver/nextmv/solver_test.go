package nextmv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// The provider is loaded at runtime, so these tests stop short of calling it.

type fakeOutcome struct {
	values, optimal, infeasible, unbounded bool
	objective                              float64
}

func (f fakeOutcome) HasValues() bool         { return f.values }
func (f fakeOutcome) IsOptimal() bool         { return f.optimal }
func (f fakeOutcome) IsInfeasible() bool      { return f.infeasible }
func (f fakeOutcome) IsUnbounded() bool       { return f.unbounded }
func (f fakeOutcome) ObjectiveValue() float64 { return f.objective }
func (f fakeOutcome) RunTime() time.Duration  { return 150 * time.Millisecond }

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		outcome  fakeOutcome
		expected entities.SolveStatus
	}{
		{"optimal", fakeOutcome{values: true, optimal: true}, entities.Optimal},
		{"time limit with incumbent", fakeOutcome{values: true}, entities.Suboptimal},
		{"infeasible", fakeOutcome{infeasible: true}, entities.Infeasible},
		{"unbounded", fakeOutcome{unbounded: true}, entities.Unbounded},
		{"nothing", fakeOutcome{}, entities.NoSolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusOf(tt.outcome))
		})
	}
}

func TestNewSolution(t *testing.T) {
	solution := newSolution("highs", fakeOutcome{values: true, optimal: true, objective: 42})
	assert.Equal(t, entities.Optimal, solution.Status)
	assert.InDelta(t, 42.0, solution.ObjectiveValue, 1e-9)
	assert.Equal(t, 150*time.Millisecond, solution.RunTime)
	assert.Contains(t, solution.Diagnostic, "highs")

	failed := newSolution("highs", fakeOutcome{infeasible: true, objective: 7})
	assert.Equal(t, entities.Infeasible, failed.Status)
	assert.Zero(t, failed.ObjectiveValue, "objective is only read when values exist")
	assert.Contains(t, failed.Diagnostic, "infeasible=true")
}

func TestNewSolver_DefaultProvider(t *testing.T) {
	assert.Equal(t, DefaultProvider, NewSolver(Config{}).config.Provider)
	assert.Equal(t, "xpress", NewSolver(Config{Provider: "xpress"}).config.Provider)
}

func TestSolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solution, err := NewSolver(Config{}).Solve(ctx, &entities.Model{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, solution)
}
