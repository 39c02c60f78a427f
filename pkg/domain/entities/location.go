package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ReserveName is the name of the synthetic feasibility-valve location
const ReserveName = "DUMMY_RESERVE"

// LocationKind represents the role a location plays in the network
type LocationKind int

const (
	Factory LocationKind = iota
	Reserve
	Hospital
)

// String method for LocationKind enum
func (k LocationKind) String() string {
	switch k {
	case Factory:
		return "Factory"
	case Reserve:
		return "Reserve"
	case Hospital:
		return "Hospital"
	default:
		return "Unknown"
	}
}

// Location is a node of the supply network.
// Stock is only populated for factories: resource keys carry initial stock,
// equipment keys mark the items the factory can manufacture.
// Demand is only populated for hospitals, one value per modeled day.
type Location struct {
	Name   string
	Kind   LocationKind
	Stock  map[string]decimal.Decimal
	Demand []decimal.Decimal
}

// NewFactory creates a validated factory location
func NewFactory(name string, stock map[string]decimal.Decimal) (*Location, error) {
	if name == "" {
		return nil, fmt.Errorf("factory name cannot be empty")
	}
	if name == ReserveName {
		return nil, fmt.Errorf("factory name %s is reserved", name)
	}
	copied := make(map[string]decimal.Decimal, len(stock))
	for item, qty := range stock {
		if qty.IsNegative() {
			return nil, fmt.Errorf("factory %s: stock of %s cannot be negative, got %s", name, item, qty)
		}
		copied[item] = qty
	}
	return &Location{Name: name, Kind: Factory, Stock: copied}, nil
}

// NewHospital creates a validated hospital location
func NewHospital(name string, demand []decimal.Decimal) (*Location, error) {
	if name == "" {
		return nil, fmt.Errorf("hospital name cannot be empty")
	}
	if name == ReserveName {
		return nil, fmt.Errorf("hospital name %s is reserved", name)
	}
	for day, qty := range demand {
		if qty.IsNegative() {
			return nil, fmt.Errorf("hospital %s: demand on day %d cannot be negative, got %s", name, day+1, qty)
		}
	}
	return &Location{Name: name, Kind: Hospital, Demand: append([]decimal.Decimal(nil), demand...)}, nil
}

// NewReserve creates the synthetic reserve location
func NewReserve() *Location {
	return &Location{Name: ReserveName, Kind: Reserve}
}

// Offers reports whether a factory can manufacture the item
func (l Location) Offers(item string) bool {
	if l.Kind != Factory {
		return false
	}
	_, ok := l.Stock[item]
	return ok
}

// InitialStock returns the day-1 stock of a material, zero when absent
func (l Location) InitialStock(material string) decimal.Decimal {
	return l.Stock[material]
}

// DemandOn returns the published demand for a 1-based day, zero outside the vector
func (l Location) DemandOn(day int) decimal.Decimal {
	if day < 1 || day > len(l.Demand) {
		return decimal.Zero
	}
	return l.Demand[day-1]
}
