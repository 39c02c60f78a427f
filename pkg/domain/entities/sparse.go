package entities

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

// Entry is one nonzero coefficient of the constraint matrix
type Entry struct {
	Var         VarKey
	Row         RowKey
	Coefficient decimal.Decimal
}

// SparseMatrix stores only the nonzero (variable, row) coefficients.
// Absence of a cell means a coefficient of zero.
type SparseMatrix struct {
	cells map[Cell]decimal.Decimal
}

// NewSparseMatrix creates an empty matrix with room for sizeHint cells
func NewSparseMatrix(sizeHint int) *SparseMatrix {
	return &SparseMatrix{cells: make(map[Cell]decimal.Decimal, sizeHint)}
}

// Set stores a coefficient. Zero coefficients are dropped; setting a cell twice is an error.
func (m *SparseMatrix) Set(v VarKey, r RowKey, coefficient decimal.Decimal) error {
	if coefficient.IsZero() {
		return nil
	}
	cell := Cell{Var: v, Row: r}
	if _, exists := m.cells[cell]; exists {
		return fmt.Errorf("coefficient (%s, %s): %w", v, r, ErrDuplicateKey)
	}
	m.cells[cell] = coefficient
	return nil
}

// Get returns the coefficient of a cell, zero when absent
func (m *SparseMatrix) Get(v VarKey, r RowKey) decimal.Decimal {
	return m.cells[Cell{Var: v, Row: r}]
}

// Has reports whether a nonzero coefficient is stored for the cell
func (m *SparseMatrix) Has(v VarKey, r RowKey) bool {
	_, ok := m.cells[Cell{Var: v, Row: r}]
	return ok
}

// Len returns the number of stored coefficients
func (m *SparseMatrix) Len() int {
	return len(m.cells)
}

// Entries returns every coefficient ordered by row name, then variable name
func (m *SparseMatrix) Entries() []Entry {
	entries := make([]Entry, 0, len(m.cells))
	for cell, coefficient := range m.cells {
		entries = append(entries, Entry{Var: cell.Var, Row: cell.Row, Coefficient: coefficient})
	}
	sortEntries(entries)
	return entries
}

// ByRow groups the coefficients by constraint row, each group ordered by variable name
func (m *SparseMatrix) ByRow() map[RowKey][]Entry {
	rows := make(map[RowKey][]Entry)
	for _, entry := range m.Entries() {
		rows[entry.Row] = append(rows[entry.Row], entry)
	}
	return rows
}

// WriteTo writes one tab-separated "row variable coefficient" line per entry in sorted order
func (m *SparseMatrix) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, entry := range m.Entries() {
		n, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", entry.Row, entry.Var, entry.Coefficient.String())
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		ri, rj := entries[i].Row.String(), entries[j].Row.String()
		if ri != rj {
			return ri < rj
		}
		return entries[i].Var.String() < entries[j].Var.String()
	})
}
