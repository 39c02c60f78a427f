package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

var (
	plusOne  = decimal.NewFromInt(1)
	minusOne = decimal.NewFromInt(-1)
)

// Cells is one named family of constraint coefficients
type Cells struct {
	Name  string
	Cells map[entities.Cell]decimal.Decimal
}

type cellMap map[entities.Cell]decimal.Decimal

func (c cellMap) put(v entities.VarKey, r entities.RowKey, coefficient decimal.Decimal) error {
	if coefficient.IsZero() {
		return nil
	}
	cell := entities.Cell{Var: v, Row: r}
	if _, exists := c[cell]; exists {
		return fmt.Errorf("coefficient (%s, %s): %w", v, r, entities.ErrDuplicateKey)
	}
	c[cell] = coefficient
	return nil
}

// CoefficientFamilies generates the coefficients of every row family.
//
// Convention: M[m,l,d] is what location l holds when day d decisions are
// taken. Production, consumption and shipments of day d settle into day d+1:
//
//	M[m,l,d] = M[m,l,d-1] + made(d-1) - consumed(d-1) - out(d-1) + in(d-1)
func CoefficientFamilies(topo *Topology) ([]Cells, error) {
	generators := []struct {
		name string
		fn   func(*Topology) (cellMap, error)
	}{
		{"manufacturing", manufacturingCoefficients},
		{"onhand", onHandCoefficients},
		{"demand", demandCoefficients},
		{"availability", availabilityCoefficients},
		{"shipped", shippedCoefficients},
		{"capacities", capacityCoefficients},
	}

	families := make([]Cells, 0, len(generators))
	for _, g := range generators {
		cells, err := g.fn(topo)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s coefficients: %w", g.name, err)
		}
		families = append(families, Cells{Name: g.name, Cells: cells})
	}
	return families, nil
}

// manufacturingCoefficients: sum(recipe * made) - M[r,f,d] <= 0
func manufacturingCoefficients(topo *Topology) (cellMap, error) {
	cells := make(cellMap)
	for day := 1; day <= topo.Days(); day++ {
		for _, factory := range topo.LocationsOfKind(entities.Factory) {
			offered := topo.Offered(factory)
			for _, resource := range topo.Resources() {
				row := entities.ManufacturingKey(resource.Name, factory.Name, day)
				for _, recipe := range offered {
					made := entities.ProductionVar(recipe.Class, recipe.Equipment, factory.Name, day)
					if err := cells.put(made, row, recipe.QtyPer(resource.Name)); err != nil {
						return nil, err
					}
				}
				if err := cells.put(entities.OnHandVar(resource.Name, factory.Name, day), row, minusOne); err != nil {
					return nil, err
				}
			}
		}
	}
	return cells, nil
}

// onHandCoefficients writes the balance of every material at every location.
// Reserve rows and day-1 rows only carry the on-hand variable itself; their
// value comes from the right-hand side.
func onHandCoefficients(topo *Topology) (cellMap, error) {
	cells := make(cellMap)
	for _, material := range topo.Materials {
		for _, location := range topo.Locations {
			for day := 1; day <= topo.OnHandDays(); day++ {
				row := entities.OnHandKey(material.Name, location.Name, day)
				if err := cells.put(entities.OnHandVar(material.Name, location.Name, day), row, plusOne); err != nil {
					return nil, err
				}
				if day == 1 || location.Kind == entities.Reserve {
					continue
				}
				if err := balanceTerms(topo, cells, row, material, location, day-1); err != nil {
					return nil, err
				}
			}
		}
	}
	return cells, nil
}

func balanceTerms(topo *Topology, cells cellMap, row entities.RowKey, material entities.Material, location entities.Location, prev int) error {
	if err := cells.put(entities.OnHandVar(material.Name, location.Name, prev), row, minusOne); err != nil {
		return err
	}

	if location.Kind == entities.Factory {
		for _, recipe := range topo.Offered(location) {
			made := entities.ProductionVar(recipe.Class, recipe.Equipment, location.Name, prev)
			coefficient := recipe.QtyPer(material.Name)
			if recipe.Equipment == material.Name {
				coefficient = minusOne
			}
			if err := cells.put(made, row, coefficient); err != nil {
				return err
			}
		}
	}

	for _, edge := range topo.Outgoing(location.Name) {
		if err := cells.put(entities.ShippedVar(material.Name, edge, prev), row, plusOne); err != nil {
			return err
		}
	}
	for _, edge := range topo.Incoming(location.Name) {
		if err := cells.put(entities.ShippedVar(material.Name, edge, prev), row, minusOne); err != nil {
			return err
		}
	}
	return nil
}

// demandCoefficients: -(stock of the class at the hospital) <= -demand.
// Day 1 stock can only come from day-zero reserve seeds; later days use the
// previous day's stock plus net inflow.
func demandCoefficients(topo *Topology) (cellMap, error) {
	cells := make(cellMap)
	for _, hospital := range topo.LocationsOfKind(entities.Hospital) {
		for day := 1; day <= topo.Days(); day++ {
			for _, class := range entities.EquipmentClasses {
				equipment := topo.EquipmentOfClass(class)
				row := entities.DemandKey(class, hospital.Name, day)
				for _, item := range equipment {
					if err := demandTerms(topo, cells, row, item, hospital, day); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return cells, nil
}

func demandTerms(topo *Topology, cells cellMap, row entities.RowKey, item entities.Material, hospital entities.Location, day int) error {
	if day == 1 {
		for _, edge := range topo.Incoming(hospital.Name) {
			if edge.Origin != entities.ReserveName {
				continue
			}
			if err := cells.put(entities.SeedVar(item.Name, edge), row, minusOne); err != nil {
				return err
			}
		}
		return nil
	}

	prev := day - 1
	if err := cells.put(entities.OnHandVar(item.Name, hospital.Name, prev), row, minusOne); err != nil {
		return err
	}
	for _, edge := range topo.Outgoing(hospital.Name) {
		if err := cells.put(entities.ShippedVar(item.Name, edge, prev), row, plusOne); err != nil {
			return err
		}
	}
	for _, edge := range topo.Incoming(hospital.Name) {
		if err := cells.put(entities.ShippedVar(item.Name, edge, prev), row, minusOne); err != nil {
			return err
		}
	}
	return nil
}

// availabilityCoefficients: sum(shipped out on day d) - M[m,l,d] <= 0.
// A factory may also ship equipment it makes on day d the same day:
// sum(shipped out on day d) - made(d) - M[m,f,d] <= 0.
func availabilityCoefficients(topo *Topology) (cellMap, error) {
	cells := make(cellMap)
	for _, material := range topo.Materials {
		for _, location := range topo.Locations {
			for day := 1; day <= topo.Days(); day++ {
				row := entities.AvailabilityKey(material.Name, location.Name, day)
				for _, edge := range topo.Outgoing(location.Name) {
					if err := cells.put(entities.ShippedVar(material.Name, edge, day), row, plusOne); err != nil {
						return nil, err
					}
				}
				if location.Kind == entities.Factory && material.IsEquipment() {
					for _, recipe := range topo.Offered(location) {
						if recipe.Equipment != material.Name {
							continue
						}
						made := entities.ProductionVar(recipe.Class, recipe.Equipment, location.Name, day)
						if err := cells.put(made, row, minusOne); err != nil {
							return nil, err
						}
					}
				}
				if err := cells.put(entities.OnHandVar(material.Name, location.Name, day), row, minusOne); err != nil {
					return nil, err
				}
			}
		}
	}
	return cells, nil
}

// shippedCoefficients: sum(shipped per material) - total shipped = 0
func shippedCoefficients(topo *Topology) (cellMap, error) {
	cells := make(cellMap)
	for _, edge := range topo.Edges {
		for day := 1; day <= topo.Days(); day++ {
			row := entities.ShippedKey(edge.ID(), day)
			for _, material := range topo.Materials {
				if err := cells.put(entities.ShippedVar(material.Name, edge.ID(), day), row, plusOne); err != nil {
					return nil, err
				}
			}
			if err := cells.put(entities.TotalShippedVar(edge.ID(), day), row, minusOne); err != nil {
				return nil, err
			}
		}
	}
	return cells, nil
}

// capacityCoefficients: total shipped <= capacity
func capacityCoefficients(topo *Topology) (cellMap, error) {
	cells := make(cellMap)
	for _, edge := range topo.Edges {
		for day := 1; day <= topo.Days(); day++ {
			if err := cells.put(entities.TotalShippedVar(edge.ID(), day), entities.CapacityKey(edge.ID(), day), plusOne); err != nil {
				return nil, err
			}
		}
	}
	return cells, nil
}
