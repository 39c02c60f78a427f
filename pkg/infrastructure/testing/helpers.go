package testing

import (
	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/repositories/memory"
)

// D is shorthand for an integral decimal quantity
func D(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Demand converts integral per-day demand into decimals
func Demand(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = D(v)
	}
	return out
}

// BuildSingleResourceScenario builds two factories and one hospital. One
// respirator ("vent") needs one unit of "plastic"; factoryA holds 10 plastic,
// factoryB holds none. Both factories can build vents and ship to hospital1.
func BuildSingleResourceScenario(demand ...int64) entities.Tables {
	return entities.Tables{
		Factories: entities.CostTable{
			"factoryA": {"plastic": D(10), "vent": D(0)},
			"factoryB": {"plastic": D(0), "vent": D(0)},
		},
		Respirators: entities.CostTable{
			"vent": {"plastic": D(1)},
		},
		PPE:       entities.CostTable{},
		Resources: []string{"plastic"},
		Demand: []entities.DemandRecord{
			{Location: "hospital1", Values: Demand(demand...)},
		},
		Shipping: []entities.ShippingRecord{
			{Origin: "factoryA", Destination: "hospital1", Capacity: D(100), Cost: D(1)},
			{Origin: "factoryB", Destination: "hospital1", Capacity: D(100), Cost: D(2)},
		},
	}
}

// BuildZeroCapacityScenario builds one factory whose only lane to the
// hospital has no capacity
func BuildZeroCapacityScenario(demand ...int64) entities.Tables {
	return entities.Tables{
		Factories: entities.CostTable{
			"factoryA": {"plastic": D(100), "vent": D(0)},
		},
		Respirators: entities.CostTable{
			"vent": {"plastic": D(1)},
		},
		PPE:       entities.CostTable{},
		Resources: []string{"plastic"},
		Demand: []entities.DemandRecord{
			{Location: "hospital1", Values: Demand(demand...)},
		},
		Shipping: []entities.ShippingRecord{
			{Origin: "factoryA", Destination: "hospital1", Capacity: D(0), Cost: D(1)},
		},
	}
}

// BuildRegionalScenario builds a network with both equipment classes, two
// resources, a factory-to-factory lane, a hospital-to-hospital lane and a
// duplicated lane whose cheaper row must win.
func BuildRegionalScenario() entities.Tables {
	return entities.Tables{
		Factories: entities.CostTable{
			"northplant": {"cloth": D(40), "metal": D(30), "mask": D(0), "vent": D(0)},
			"southplant": {"cloth": D(20), "gown": D(0)},
		},
		Respirators: entities.CostTable{
			"vent": {"metal": D(3), "cloth": D(1)},
		},
		PPE: entities.CostTable{
			"mask": {"cloth": D(1)},
			"gown": {"cloth": D(2)},
		},
		Resources: []string{"metal", "cloth"},
		Demand: []entities.DemandRecord{
			{Location: "stmarys", Values: Demand(0, 4, 6)},
			{Location: "general", Values: Demand(0, 2, 2)},
		},
		Shipping: []entities.ShippingRecord{
			{Origin: "northplant", Destination: "stmarys", Capacity: D(20), Cost: D(3)},
			{Origin: "southplant", Destination: "northplant", Capacity: D(15), Cost: D(1)},
			{Origin: "southplant", Destination: "general", Capacity: D(10), Cost: D(4)},
			{Origin: "northplant", Destination: "stmarys", Capacity: D(50), Cost: D(5)},
			{Origin: "stmarys", Destination: "general", Capacity: D(5), Cost: D(1)},
		},
	}
}

// LoadScenarioRepository stores tables in a fresh in-memory repository
func LoadScenarioRepository(tables entities.Tables) *memory.ScenarioRepository {
	repo := memory.NewScenarioRepository()
	if err := repo.LoadTables(tables); err != nil {
		panic(err)
	}
	return repo
}
