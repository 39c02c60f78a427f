package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// CoefficientRecord is one stored nonzero of an exported model
type CoefficientRecord struct {
	Row         string
	Var         string
	Coefficient decimal.Decimal
}

// RunRecord describes one exported model
type RunRecord struct {
	RunID        string
	CreatedAt    time.Time
	Variables    int
	Coefficients int
}

// ModelRepository persists assembled models as sparse key-value matrices
type ModelRepository interface {
	SaveModel(ctx context.Context, runID string, model *entities.Model) error
	LoadCoefficients(ctx context.Context, runID string) ([]CoefficientRecord, error)
	ListRuns(ctx context.Context) ([]RunRecord, error)
	Close() error
}
