package memory

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

func TestScenarioRepository_GetTables_NotLoaded(t *testing.T) {
	repo := NewScenarioRepository()

	if _, err := repo.GetTables(); err == nil {
		t.Error("Expected error before any scenario is loaded")
	}
	if _, err := repo.GetDemand(); err == nil {
		t.Error("Expected error from GetDemand before any scenario is loaded")
	}
}

func TestScenarioRepository_LoadTables(t *testing.T) {
	repo := NewScenarioRepository()

	tables := entities.Tables{
		Factories:   entities.CostTable{"factoryA": {"plastic": decimal.NewFromInt(10), "vent": decimal.Zero}},
		Respirators: entities.CostTable{"vent": {"plastic": decimal.NewFromInt(2)}},
		PPE:         entities.CostTable{},
		Resources:   []string{"plastic"},
		Demand:      []entities.DemandRecord{{Location: "hospital1", Values: []decimal.Decimal{decimal.NewFromInt(3)}}},
		Shipping: []entities.ShippingRecord{
			{Origin: "factoryA", Destination: "hospital1", Capacity: decimal.NewFromInt(5), Cost: decimal.NewFromInt(1)},
		},
	}

	if err := repo.LoadTables(tables); err != nil {
		t.Fatalf("Failed to load tables: %v", err)
	}

	// Mutating the caller's tables must not leak into the repository
	tables.Factories["factoryA"]["plastic"] = decimal.NewFromInt(99)
	tables.Demand[0].Values[0] = decimal.NewFromInt(99)

	factories, err := repo.GetFactories()
	if err != nil {
		t.Fatalf("Failed to get factories: %v", err)
	}
	if got := factories["factoryA"]["plastic"]; !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected stored plastic stock 10, got %s", got)
	}

	demand, err := repo.GetDemand()
	if err != nil {
		t.Fatalf("Failed to get demand: %v", err)
	}
	if got := demand[0].Values[0]; !got.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected stored demand 3, got %s", got)
	}
}

func TestScenarioRepository_GetRecipes(t *testing.T) {
	repo := NewScenarioRepository()
	err := repo.LoadTables(entities.Tables{
		Respirators: entities.CostTable{"vent": {"metal": decimal.NewFromInt(3)}},
		PPE:         entities.CostTable{"mask": {"cloth": decimal.NewFromInt(1)}},
	})
	if err != nil {
		t.Fatalf("Failed to load tables: %v", err)
	}

	tests := []struct {
		class    entities.EquipmentClass
		expected string
		wantErr  bool
	}{
		{entities.Respirators, "vent", false},
		{entities.PPE, "mask", false},
		{entities.NoClass, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			recipes, err := repo.GetRecipes(tt.class)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error for unknown class")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if _, ok := recipes[tt.expected]; !ok {
				t.Errorf("Expected recipe %s in %v", tt.expected, recipes)
			}
		})
	}
}
