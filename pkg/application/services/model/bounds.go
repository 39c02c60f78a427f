package model

import (
	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// Bounds is one named family of row right-hand sides
type Bounds struct {
	Name string
	Rows map[entities.RowKey]decimal.Decimal
}

// UpperBoundFamilies returns the right-hand sides of every "<=" row family
func UpperBoundFamilies(topo *Topology) []Bounds {
	return []Bounds{
		{Name: "manufacturing", Rows: manufacturingUpperBounds(topo)},
		{Name: "demand", Rows: demandUpperBounds(topo)},
		{Name: "availability", Rows: availabilityUpperBounds(topo)},
		{Name: "capacities", Rows: capacityUpperBounds(topo)},
	}
}

// EqualityFamilies returns the right-hand sides of every "=" row family
func EqualityFamilies(topo *Topology) []Bounds {
	return []Bounds{
		{Name: "onhand", Rows: onHandEqualities(topo)},
		{Name: "shipped", Rows: shippedEqualities(topo)},
	}
}

// manufacturingUpperBounds caps resource consumption at zero; supply enters
// through the on-hand term of the row.
func manufacturingUpperBounds(topo *Topology) map[entities.RowKey]decimal.Decimal {
	rows := make(map[entities.RowKey]decimal.Decimal)
	for _, resource := range topo.Resources() {
		for _, factory := range topo.LocationsOfKind(entities.Factory) {
			for day := 1; day <= topo.Days(); day++ {
				rows[entities.ManufacturingKey(resource.Name, factory.Name, day)] = decimal.Zero
			}
		}
	}
	return rows
}

// demandUpperBounds bounds the negated stock of each class by the negated demand.
// Classes without any equipment get no rows.
func demandUpperBounds(topo *Topology) map[entities.RowKey]decimal.Decimal {
	rows := make(map[entities.RowKey]decimal.Decimal)
	for _, hospital := range topo.LocationsOfKind(entities.Hospital) {
		for day := 1; day <= topo.Days(); day++ {
			for _, class := range entities.EquipmentClasses {
				if len(topo.EquipmentOfClass(class)) == 0 {
					continue
				}
				rows[entities.DemandKey(class, hospital.Name, day)] = hospital.DemandOn(day).Neg()
			}
		}
	}
	return rows
}

func availabilityUpperBounds(topo *Topology) map[entities.RowKey]decimal.Decimal {
	rows := make(map[entities.RowKey]decimal.Decimal)
	for _, material := range topo.Materials {
		for _, location := range topo.Locations {
			for day := 1; day <= topo.Days(); day++ {
				rows[entities.AvailabilityKey(material.Name, location.Name, day)] = decimal.Zero
			}
		}
	}
	return rows
}

func capacityUpperBounds(topo *Topology) map[entities.RowKey]decimal.Decimal {
	rows := make(map[entities.RowKey]decimal.Decimal)
	for _, edge := range topo.Edges {
		for day := 1; day <= topo.Days(); day++ {
			rows[entities.CapacityKey(edge.ID(), day)] = edge.Capacity
		}
	}
	return rows
}

// onHandEqualities seeds day 1 with factory resource stock. The reserve holds
// the stock sentinel of every equipment item on every day.
func onHandEqualities(topo *Topology) map[entities.RowKey]decimal.Decimal {
	rows := make(map[entities.RowKey]decimal.Decimal)
	for _, material := range topo.Materials {
		for _, location := range topo.Locations {
			for day := 1; day <= topo.OnHandDays(); day++ {
				rows[entities.OnHandKey(material.Name, location.Name, day)] = initialOnHand(topo, material, location, day)
			}
		}
	}
	return rows
}

func initialOnHand(topo *Topology, material entities.Material, location entities.Location, day int) decimal.Decimal {
	switch {
	case location.Kind == entities.Reserve && material.IsEquipment():
		return topo.Config.ReserveStock
	case location.Kind == entities.Factory && day == 1 && material.Kind == entities.Resource:
		return location.InitialStock(material.Name)
	default:
		return decimal.Zero
	}
}

func shippedEqualities(topo *Topology) map[entities.RowKey]decimal.Decimal {
	rows := make(map[entities.RowKey]decimal.Decimal)
	for _, edge := range topo.Edges {
		for day := 1; day <= topo.Days(); day++ {
			rows[entities.ShippedKey(edge.ID(), day)] = decimal.Zero
		}
	}
	return rows
}
