package entities

import "github.com/shopspring/decimal"

// CostTable maps an entity name to attribute values.
// Used for factory stock and for equipment recipes.
type CostTable map[string]map[string]decimal.Decimal

// DemandRecord is one row of the hospital demand table
type DemandRecord struct {
	Location string
	Values   []decimal.Decimal
}

// ShippingRecord is one row of the shipping edge table
type ShippingRecord struct {
	Origin      string
	Destination string
	Capacity    decimal.Decimal
	Cost        decimal.Decimal
}

// Tables holds the raw input tables a model is assembled from
type Tables struct {
	Factories   CostTable
	Respirators CostTable
	PPE         CostTable
	Resources   []string
	Demand      []DemandRecord
	Shipping    []ShippingRecord
}

// TotalDemand folds every published demand value into one total
func (t Tables) TotalDemand() decimal.Decimal {
	total := decimal.Zero
	for _, row := range t.Demand {
		total = total.Add(decimal.Sum(decimal.Zero, row.Values...))
	}
	return total
}
