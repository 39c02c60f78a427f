package model

import "github.com/tbadun/co327-corona-lp/pkg/domain/entities"

// GenerateVariables enumerates every decision variable of the topology.
// Production and shipping exist on modeled days only; on-hand exists from day 1.
func GenerateVariables(topo *Topology) []entities.VarKey {
	days := topo.Days()
	var vars []entities.VarKey

	// production, only where the factory offers the item
	for day := 1; day <= days; day++ {
		for _, factory := range topo.LocationsOfKind(entities.Factory) {
			for _, recipe := range topo.Offered(factory) {
				vars = append(vars, entities.ProductionVar(recipe.Class, recipe.Equipment, factory.Name, day))
			}
		}
	}

	for day := 1; day <= days; day++ {
		for _, edge := range topo.Edges {
			for _, material := range topo.Materials {
				vars = append(vars, entities.ShippedVar(material.Name, edge.ID(), day))
			}
		}
	}

	for day := 1; day <= days; day++ {
		for _, edge := range topo.Edges {
			vars = append(vars, entities.TotalShippedVar(edge.ID(), day))
		}
	}

	for _, material := range topo.Materials {
		for _, location := range topo.Locations {
			for day := 1; day <= topo.OnHandDays(); day++ {
				vars = append(vars, entities.OnHandVar(material.Name, location.Name, day))
			}
		}
	}

	// day-zero seeds only feed day-1 demand rows, which exist at hospitals alone
	if days >= 1 {
		for _, edge := range topo.ReserveEdges() {
			if destination, _ := topo.Location(edge.Destination); destination.Kind != entities.Hospital {
				continue
			}
			for _, material := range topo.Materials {
				if material.IsEquipment() {
					vars = append(vars, entities.SeedVar(material.Name, edge.ID()))
				}
			}
		}
	}

	return vars
}

// CountByKind tallies variables per kind
func CountByKind(vars []entities.VarKey) map[entities.VarKind]int {
	counts := make(map[entities.VarKind]int)
	for _, v := range vars {
		counts[v.Kind]++
	}
	return counts
}
