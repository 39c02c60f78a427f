package services

import (
	"math"
	"sort"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// DefaultTolerance is the absolute slack allowed when checking a row
const DefaultTolerance = 1e-6

// Violation describes a row that an assignment does not satisfy.
// Negative variables are reported with Var set and a zero Row.
type Violation struct {
	Row      entities.RowKey
	Var      entities.VarKey
	Negative bool
	Activity float64
	RHS      float64
	Equality bool
}

// Name returns the row or variable the violation refers to
func (v Violation) Name() string {
	if v.Negative {
		return v.Var.String()
	}
	return v.Row.String()
}

// Evaluator checks assignments against the rows of a model
type Evaluator struct {
	model     *entities.Model
	rows      map[entities.RowKey][]entities.Entry
	tolerance float64
}

// NewEvaluator indexes the model's coefficients by row
func NewEvaluator(model *entities.Model, tolerance float64) *Evaluator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Evaluator{
		model:     model,
		rows:      model.Coefficients.ByRow(),
		tolerance: tolerance,
	}
}

// Activity returns the left-hand side of a row under the assignment
func (e *Evaluator) Activity(row entities.RowKey, values map[entities.VarKey]float64) float64 {
	var activity float64
	for _, entry := range e.rows[row] {
		activity += entry.Coefficient.InexactFloat64() * values[entry.Var]
	}
	return activity
}

// Violations returns every row the assignment breaks and every negative
// variable, ordered by name.
func (e *Evaluator) Violations(values map[entities.VarKey]float64) []Violation {
	var violations []Violation
	for _, row := range e.model.Rows() {
		rhs, equality, _ := e.model.RHS(row)
		target := rhs.InexactFloat64()
		activity := e.Activity(row, values)
		broken := activity > target+e.tolerance
		if equality {
			broken = math.Abs(activity-target) > e.tolerance
		}
		if broken {
			violations = append(violations, Violation{Row: row, Activity: activity, RHS: target, Equality: equality})
		}
	}
	for _, v := range e.model.Variables {
		if values[v] < -e.tolerance {
			violations = append(violations, Violation{Var: v, Negative: true, Activity: values[v]})
		}
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Name() < violations[j].Name()
	})
	return violations
}

// ObjectiveValue prices an assignment with the model's cost terms
func (e *Evaluator) ObjectiveValue(values map[entities.VarKey]float64) float64 {
	var total float64
	for _, v := range e.model.ObjectiveTerms() {
		total += e.model.Objective[v].InexactFloat64() * values[v]
	}
	return total
}
