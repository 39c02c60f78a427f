package services

import (
	"context"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// Solver is the numeric engine a model is dispatched to.
// Implementations return a Solution for every status the engine reports;
// the error is reserved for failures to run the engine at all.
type Solver interface {
	Solve(ctx context.Context, model *entities.Model) (*entities.Solution, error)
}
