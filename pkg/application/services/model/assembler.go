package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// Assembler turns input tables into the five structures a solver consumes
type Assembler struct {
	config Config
}

// NewAssembler creates an assembler with the given reserve sentinels
func NewAssembler(config Config) *Assembler {
	return &Assembler{config: config}
}

// Assembly is an assembled model together with the topology it was generated from
type Assembly struct {
	Topology *Topology
	Model    *entities.Model
}

// Assemble builds the complete model. It is a pure function of the tables
// and the sentinels; any failure aborts before a model is returned.
func (a *Assembler) Assemble(tables entities.Tables) (*Assembly, error) {
	topo, err := BuildTopology(tables, a.config)
	if err != nil {
		return nil, fmt.Errorf("failed to build topology: %w", err)
	}

	m, err := AssembleTopology(topo)
	if err != nil {
		return nil, err
	}

	return &Assembly{Topology: topo, Model: m}, nil
}

// AssembleTopology generates and cross-checks the model of an already built topology
func AssembleTopology(topo *Topology) (*entities.Model, error) {
	vars := GenerateVariables(topo)

	objective, err := Objective(topo, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to generate objective: %w", err)
	}

	upper, err := mergeBounds(UpperBoundFamilies(topo))
	if err != nil {
		return nil, fmt.Errorf("failed to merge upper bounds: %w", err)
	}

	equalities, err := mergeBounds(EqualityFamilies(topo))
	if err != nil {
		return nil, fmt.Errorf("failed to merge equalities: %w", err)
	}

	families, err := CoefficientFamilies(topo)
	if err != nil {
		return nil, err
	}
	cells := NewMerger[entities.Cell, decimal.Decimal]()
	for _, family := range families {
		if err := cells.Merge(family.Name, family.Cells); err != nil {
			return nil, fmt.Errorf("failed to merge coefficients: %w", err)
		}
	}

	matrix := entities.NewSparseMatrix(len(cells.Result()))
	for cell, coefficient := range cells.Result() {
		if err := matrix.Set(cell.Var, cell.Row, coefficient); err != nil {
			return nil, err
		}
	}

	m := &entities.Model{
		Objective:    objective,
		Variables:    vars,
		Coefficients: matrix,
		UpperBounds:  upper,
		Equalities:   equalities,
	}

	if err := CheckDeclarations(m); err != nil {
		return nil, err
	}
	return m, nil
}

func mergeBounds(families []Bounds) (map[entities.RowKey]decimal.Decimal, error) {
	merger := NewMerger[entities.RowKey, decimal.Decimal]()
	for _, family := range families {
		if err := merger.Merge(family.Name, family.Rows); err != nil {
			return nil, err
		}
	}
	return merger.Result(), nil
}

// CheckDeclarations verifies that variable names are unique, that no row is
// both an upper bound and an equality, and that every coefficient and cost
// term references a declared variable and row.
func CheckDeclarations(m *entities.Model) error {
	declared := make(map[entities.VarKey]bool, len(m.Variables))
	names := make(map[string]entities.VarKey, len(m.Variables))
	for _, v := range m.Variables {
		if prev, exists := names[v.String()]; exists {
			return fmt.Errorf("variable name %s used by %v and %v: %w", v, prev, v, entities.ErrDuplicateKey)
		}
		names[v.String()] = v
		declared[v] = true
	}

	for row := range m.Equalities {
		if _, exists := m.UpperBounds[row]; exists {
			return fmt.Errorf("row %s is both an upper bound and an equality: %w", row, entities.ErrDuplicateKey)
		}
	}

	for _, entry := range m.Coefficients.Entries() {
		if !declared[entry.Var] {
			return fmt.Errorf("coefficient references variable %s: %w", entry.Var, entities.ErrUndeclared)
		}
		if _, _, ok := m.RHS(entry.Row); !ok {
			return fmt.Errorf("coefficient references row %s: %w", entry.Row, entities.ErrUndeclared)
		}
	}

	for v := range m.Objective {
		if !declared[v] {
			return fmt.Errorf("objective references variable %s: %w", v, entities.ErrUndeclared)
		}
	}
	return nil
}
