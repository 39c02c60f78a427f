package nextmv

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/domain/services"
)

// DefaultProvider is the solver backend used when none is configured
const DefaultProvider = "highs"

// Config holds the solve options passed to the provider
type Config struct {
	Provider string
	// Duration limits the solve; zero means no limit
	Duration time.Duration
}

// Solver solves assembled models with the nextmv MIP SDK
type Solver struct {
	config Config
}

// Verify interface compliance
var _ services.Solver = (*Solver)(nil)

// NewSolver creates a solver adapter, defaulting the provider to HiGHS
func NewSolver(config Config) *Solver {
	if config.Provider == "" {
		config.Provider = DefaultProvider
	}
	return &Solver{config: config}
}

// Solve translates the model into a continuous LP and runs the provider.
// The SDK call itself cannot be interrupted; ctx is checked before and after.
func (s *Solver) Solve(ctx context.Context, model *entities.Model) (*entities.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	problem, vars := translate(model)

	solver, err := mip.NewSolver(mip.SolverProvider(s.config.Provider), problem)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s solver: %w", s.config.Provider, err)
	}

	options := mip.NewSolveOptions()
	if s.config.Duration > 0 {
		if err := options.SetMaximumDuration(s.config.Duration); err != nil {
			return nil, fmt.Errorf("failed to set solve duration: %w", err)
		}
	}
	options.SetVerbosity(mip.Off)

	result, err := solver.Solve(options)
	if err != nil {
		return nil, fmt.Errorf("failed to solve: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	solution := newSolution(s.config.Provider, result)
	if solution.HasValues() {
		solution.Values = make(map[entities.VarKey]float64, len(vars))
		for key, v := range vars {
			solution.Values[key] = result.Value(v)
		}
	}
	return solution, nil
}

// translate builds the provider model. Every variable is continuous and
// non-negative; rows and cost terms are added in name order so repeated
// translations are identical.
func translate(model *entities.Model) (mip.Model, map[entities.VarKey]mip.Float) {
	problem := mip.NewModel()
	problem.Objective().SetMinimize()

	vars := make(map[entities.VarKey]mip.Float, len(model.Variables))
	for _, key := range model.Variables {
		vars[key] = problem.NewFloat(0, math.MaxFloat64)
	}

	for _, v := range model.ObjectiveTerms() {
		problem.Objective().NewTerm(model.Objective[v].InexactFloat64(), vars[v])
	}

	byRow := model.Coefficients.ByRow()
	for _, row := range model.Rows() {
		rhs, equality, _ := model.RHS(row)
		sense := mip.LessThanOrEqual
		if equality {
			sense = mip.Equal
		}
		constraint := problem.NewConstraint(sense, rhs.InexactFloat64())
		for _, entry := range byRow[row] {
			constraint.NewTerm(entry.Coefficient.InexactFloat64(), vars[entry.Var])
		}
	}

	return problem, vars
}

// outcome is the part of a provider result that decides the solve status
type outcome interface {
	HasValues() bool
	IsOptimal() bool
	IsInfeasible() bool
	IsUnbounded() bool
	ObjectiveValue() float64
	RunTime() time.Duration
}

func newSolution(provider string, result outcome) *entities.Solution {
	solution := &entities.Solution{
		Status:  statusOf(result),
		RunTime: result.RunTime(),
	}
	if result.HasValues() {
		solution.ObjectiveValue = result.ObjectiveValue()
	}
	solution.Diagnostic = fmt.Sprintf("%s: status=%s has_values=%t optimal=%t infeasible=%t unbounded=%t runtime=%s",
		provider, solution.Status, result.HasValues(), result.IsOptimal(), result.IsInfeasible(), result.IsUnbounded(), result.RunTime())
	return solution
}

func statusOf(result outcome) entities.SolveStatus {
	switch {
	case result.HasValues() && result.IsOptimal():
		return entities.Optimal
	case result.HasValues():
		return entities.Suboptimal
	case result.IsInfeasible():
		return entities.Infeasible
	case result.IsUnbounded():
		return entities.Unbounded
	default:
		return entities.NoSolution
	}
}
