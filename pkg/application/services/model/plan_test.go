package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/domain/services"
)

// plan is a hand-built assignment. Decisions are recorded explicitly and
// on-hand values are derived by settle, independently of the generated rows.
type plan struct {
	topo   *Topology
	values map[entities.VarKey]float64
}

func assemble(t *testing.T, tables entities.Tables) *Assembly {
	t.Helper()
	asm, err := NewAssembler(DefaultConfig()).Assemble(tables)
	require.NoError(t, err)
	return asm
}

func newPlan(topo *Topology) *plan {
	return &plan{topo: topo, values: make(map[entities.VarKey]float64)}
}

func (p *plan) produce(equipment, factory string, day int, qty float64) *plan {
	recipe := p.topo.Recipes[equipment]
	p.values[entities.ProductionVar(recipe.Class, equipment, factory, day)] += qty
	return p
}

func (p *plan) ship(material, origin, destination string, day int, qty float64) *plan {
	edge := entities.EdgeID{Origin: origin, Destination: destination}
	p.values[entities.ShippedVar(material, edge, day)] += qty
	p.values[entities.TotalShippedVar(edge, day)] += qty
	return p
}

func (p *plan) seed(equipment, hospital string, qty float64) *plan {
	p.values[entities.SeedVar(equipment, entities.EdgeID{Origin: entities.ReserveName, Destination: hospital})] += qty
	return p
}

// settle fills every on-hand variable by stepping the inventory forward one day at a time
func (p *plan) settle() *plan {
	for _, material := range p.topo.Materials {
		for _, location := range p.topo.Locations {
			for day := 1; day <= p.topo.OnHandDays(); day++ {
				p.values[entities.OnHandVar(material.Name, location.Name, day)] = p.stockOn(material, location, day)
			}
		}
	}
	return p
}

func (p *plan) stockOn(material entities.Material, location entities.Location, day int) float64 {
	if day == 1 || location.Kind == entities.Reserve {
		return initialOnHand(p.topo, material, location, day).InexactFloat64()
	}
	prev := day - 1
	stock := p.values[entities.OnHandVar(material.Name, location.Name, prev)]
	if location.Kind == entities.Factory {
		for _, recipe := range p.topo.Offered(location) {
			made := p.values[entities.ProductionVar(recipe.Class, recipe.Equipment, location.Name, prev)]
			if recipe.Equipment == material.Name {
				stock += made
			}
			stock -= recipe.QtyPer(material.Name).InexactFloat64() * made
		}
	}
	for _, edge := range p.topo.Outgoing(location.Name) {
		stock -= p.values[entities.ShippedVar(material.Name, edge, prev)]
	}
	for _, edge := range p.topo.Incoming(location.Name) {
		stock += p.values[entities.ShippedVar(material.Name, edge, prev)]
	}
	return stock
}

func violationNames(violations []services.Violation) []string {
	names := make([]string, 0, len(violations))
	for _, v := range violations {
		names = append(names, v.Name())
	}
	return names
}
