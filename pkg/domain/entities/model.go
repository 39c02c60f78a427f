package entities

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Model holds the five inputs a solver needs
type Model struct {
	// Objective carries only nonzero cost terms; absent variables cost nothing
	Objective    map[VarKey]decimal.Decimal
	Variables    []VarKey
	Coefficients *SparseMatrix
	UpperBounds  map[RowKey]decimal.Decimal
	Equalities   map[RowKey]decimal.Decimal
}

// ModelStats summarizes the size of a model
type ModelStats struct {
	Variables    int
	UpperBounds  int
	Equalities   int
	Coefficients int
	CostTerms    int
	ByKind       map[VarKind]int
	ByFamily     map[RowFamily]int
}

// Stats returns counts of the model's components
func (m *Model) Stats() ModelStats {
	stats := ModelStats{
		Variables:    len(m.Variables),
		UpperBounds:  len(m.UpperBounds),
		Equalities:   len(m.Equalities),
		Coefficients: m.Coefficients.Len(),
		CostTerms:    len(m.Objective),
		ByKind:       make(map[VarKind]int),
		ByFamily:     make(map[RowFamily]int),
	}
	for _, v := range m.Variables {
		stats.ByKind[v.Kind]++
	}
	for _, r := range m.Rows() {
		stats.ByFamily[r.Family]++
	}
	return stats
}

// Rows returns every constraint row, upper bounds first, each group ordered by name
func (m *Model) Rows() []RowKey {
	rows := sortedRows(m.UpperBounds)
	return append(rows, sortedRows(m.Equalities)...)
}

// RHS returns the right-hand side of a row and whether the row is an equality
func (m *Model) RHS(r RowKey) (decimal.Decimal, bool, bool) {
	if v, ok := m.Equalities[r]; ok {
		return v, true, true
	}
	v, ok := m.UpperBounds[r]
	return v, false, ok
}

// ObjectiveTerms returns the cost terms ordered by variable name
func (m *Model) ObjectiveTerms() []VarKey {
	keys := make([]VarKey, 0, len(m.Objective))
	for k := range m.Objective {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func sortedRows(rows map[RowKey]decimal.Decimal) []RowKey {
	keys := make([]RowKey, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
