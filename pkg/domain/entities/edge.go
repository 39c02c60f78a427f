package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EdgeID identifies a directed shipping lane
type EdgeID struct {
	Origin      string
	Destination string
}

// String returns the lane in origin->destination form
func (e EdgeID) String() string {
	return e.Origin + "->" + e.Destination
}

// Edge is a directed shipping lane with a static per-day capacity and unit cost
type Edge struct {
	Origin      string
	Destination string
	Capacity    decimal.Decimal
	Cost        decimal.Decimal
}

// NewEdge creates a validated Edge
func NewEdge(origin, destination string, capacity, cost decimal.Decimal) (*Edge, error) {
	if origin == "" {
		return nil, fmt.Errorf("edge origin cannot be empty")
	}
	if destination == "" {
		return nil, fmt.Errorf("edge destination cannot be empty")
	}
	if origin == destination {
		return nil, fmt.Errorf("edge %s->%s cannot start and end at the same location", origin, destination)
	}
	if capacity.IsNegative() {
		return nil, fmt.Errorf("edge %s->%s: capacity cannot be negative, got %s", origin, destination, capacity)
	}
	if cost.IsNegative() {
		return nil, fmt.Errorf("edge %s->%s: cost cannot be negative, got %s", origin, destination, cost)
	}
	return &Edge{Origin: origin, Destination: destination, Capacity: capacity, Cost: cost}, nil
}

// ID returns the lane identifier of the edge
func (e Edge) ID() EdgeID {
	return EdgeID{Origin: e.Origin, Destination: e.Destination}
}

// IsReserve reports whether the edge leaves the reserve
func (e Edge) IsReserve() bool {
	return e.Origin == ReserveName
}

// Preferred reports whether e wins over other when both describe the same lane:
// cheaper cost first, then larger capacity.
func (e Edge) Preferred(other Edge) bool {
	if c := e.Cost.Cmp(other.Cost); c != 0 {
		return c < 0
	}
	return e.Capacity.GreaterThan(other.Capacity)
}
