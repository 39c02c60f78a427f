package entities

import "time"

// SolveStatus represents the outcome reported by a solver
type SolveStatus int

const (
	Optimal SolveStatus = iota
	Suboptimal
	Infeasible
	Unbounded
	NoSolution
)

// String method for SolveStatus enum
func (s SolveStatus) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Suboptimal:
		return "suboptimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case NoSolution:
		return "no_solution"
	default:
		return "unknown"
	}
}

// Solution is the assignment a solver returns for a model
type Solution struct {
	Status         SolveStatus
	ObjectiveValue float64
	Values         map[VarKey]float64
	// Diagnostic carries whatever the solver reported, verbatim
	Diagnostic string
	RunTime    time.Duration
}

// Value returns the value assigned to a variable, zero when unassigned
func (s *Solution) Value(k VarKey) float64 {
	return s.Values[k]
}

// HasValues reports whether the solver produced an assignment
func (s *Solution) HasValues() bool {
	return s != nil && (s.Status == Optimal || s.Status == Suboptimal)
}
