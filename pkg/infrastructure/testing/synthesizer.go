package testing

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// ScenarioConfig sizes a synthesized scenario
type ScenarioConfig struct {
	Factories   int
	Hospitals   int
	Resources   int
	Respirators int
	PPE         int
	Days        int
	// LaneRatio is the fraction of factory-hospital pairs connected by a lane
	LaneRatio float64
	// MaxDemand bounds each hospital's daily demand
	MaxDemand int
}

// ScenarioSynthesizer creates reproducible large scenarios for scale tests and benchmarks
type ScenarioSynthesizer struct {
	config ScenarioConfig
	rng    *rand.Rand
}

// NewScenarioSynthesizer creates a synthesizer with a fixed seed
func NewScenarioSynthesizer(config ScenarioConfig) *ScenarioSynthesizer {
	return &ScenarioSynthesizer{
		config: config,
		rng:    rand.New(rand.NewSource(42)),
	}
}

// Synthesize builds the tables. Every hospital gets at least one inbound
// lane; every factory offers every equipment item it has a resource for.
func (s *ScenarioSynthesizer) Synthesize() entities.Tables {
	c := s.config
	tables := entities.Tables{
		Factories:   entities.CostTable{},
		Respirators: entities.CostTable{},
		PPE:         entities.CostTable{},
	}

	for r := 0; r < c.Resources; r++ {
		tables.Resources = append(tables.Resources, fmt.Sprintf("resource%03d", r))
	}

	var equipment []string
	addRecipes := func(table entities.CostTable, prefix string, n int) {
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("%s%03d", prefix, i)
			recipe := map[string]decimal.Decimal{}
			for _, resource := range tables.Resources {
				if s.rng.Float64() < 0.5 {
					recipe[resource] = D(int64(1 + s.rng.Intn(4)))
				}
			}
			if len(recipe) == 0 {
				recipe[tables.Resources[s.rng.Intn(len(tables.Resources))]] = D(1)
			}
			table[name] = recipe
			equipment = append(equipment, name)
		}
	}
	addRecipes(tables.Respirators, "vent", c.Respirators)
	addRecipes(tables.PPE, "ppe", c.PPE)

	var factories []string
	for f := 0; f < c.Factories; f++ {
		name := fmt.Sprintf("factory%03d", f)
		stock := map[string]decimal.Decimal{}
		for _, resource := range tables.Resources {
			stock[resource] = D(int64(s.rng.Intn(500)))
		}
		for _, item := range equipment {
			if s.rng.Float64() < 0.6 {
				stock[item] = D(0)
			}
		}
		tables.Factories[name] = stock
		factories = append(factories, name)
	}

	for h := 0; h < c.Hospitals; h++ {
		name := fmt.Sprintf("hospital%03d", h)
		values := make([]int64, c.Days)
		for d := range values {
			values[d] = int64(s.rng.Intn(c.MaxDemand + 1))
		}
		tables.Demand = append(tables.Demand, entities.DemandRecord{Location: name, Values: Demand(values...)})

		connected := false
		for _, factory := range factories {
			if s.rng.Float64() >= c.LaneRatio {
				continue
			}
			tables.Shipping = append(tables.Shipping, s.lane(factory, name))
			connected = true
		}
		if !connected {
			tables.Shipping = append(tables.Shipping, s.lane(factories[s.rng.Intn(len(factories))], name))
		}
	}

	return tables
}

func (s *ScenarioSynthesizer) lane(origin, destination string) entities.ShippingRecord {
	return entities.ShippingRecord{
		Origin:      origin,
		Destination: destination,
		Capacity:    D(int64(10 + s.rng.Intn(200))),
		Cost:        D(int64(1 + s.rng.Intn(20))),
	}
}
