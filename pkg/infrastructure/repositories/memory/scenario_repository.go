package memory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/domain/repositories"
)

// ScenarioRepository provides in-memory storage for the input tables of one scenario
type ScenarioRepository struct {
	tables entities.Tables
	loaded bool
}

// NewScenarioRepository creates a new empty in-memory scenario repository
func NewScenarioRepository() *ScenarioRepository {
	return &ScenarioRepository{}
}

// Verify interface compliance
var _ repositories.ScenarioRepository = (*ScenarioRepository)(nil)

// LoadTables replaces the stored tables with a deep copy of the given ones
func (r *ScenarioRepository) LoadTables(tables entities.Tables) error {
	r.tables = entities.Tables{
		Factories:   copyCostTable(tables.Factories),
		Respirators: copyCostTable(tables.Respirators),
		PPE:         copyCostTable(tables.PPE),
		Resources:   append([]string(nil), tables.Resources...),
		Shipping:    append([]entities.ShippingRecord(nil), tables.Shipping...),
	}
	for _, row := range tables.Demand {
		r.tables.Demand = append(r.tables.Demand, entities.DemandRecord{
			Location: row.Location,
			Values:   append([]decimal.Decimal(nil), row.Values...),
		})
	}
	r.loaded = true
	return nil
}

// GetTables returns all stored tables
func (r *ScenarioRepository) GetTables() (entities.Tables, error) {
	if !r.loaded {
		return entities.Tables{}, fmt.Errorf("no scenario loaded")
	}
	return r.tables, nil
}

// GetFactories returns the factory stock table
func (r *ScenarioRepository) GetFactories() (entities.CostTable, error) {
	tables, err := r.GetTables()
	if err != nil {
		return nil, err
	}
	return tables.Factories, nil
}

// GetRecipes returns the recipe table of an equipment class
func (r *ScenarioRepository) GetRecipes(class entities.EquipmentClass) (entities.CostTable, error) {
	tables, err := r.GetTables()
	if err != nil {
		return nil, err
	}
	switch class {
	case entities.PPE:
		return tables.PPE, nil
	case entities.Respirators:
		return tables.Respirators, nil
	default:
		return nil, fmt.Errorf("no recipes for equipment class %s", class)
	}
}

// GetResources returns the resource names in input order
func (r *ScenarioRepository) GetResources() ([]string, error) {
	tables, err := r.GetTables()
	if err != nil {
		return nil, err
	}
	return tables.Resources, nil
}

// GetDemand returns the hospital demand rows in input order
func (r *ScenarioRepository) GetDemand() ([]entities.DemandRecord, error) {
	tables, err := r.GetTables()
	if err != nil {
		return nil, err
	}
	return tables.Demand, nil
}

// GetShipping returns the shipping edge rows in input order
func (r *ScenarioRepository) GetShipping() ([]entities.ShippingRecord, error) {
	tables, err := r.GetTables()
	if err != nil {
		return nil, err
	}
	return tables.Shipping, nil
}

func copyCostTable(table entities.CostTable) entities.CostTable {
	if table == nil {
		return nil
	}
	copied := make(entities.CostTable, len(table))
	for name, attributes := range table {
		inner := make(map[string]decimal.Decimal, len(attributes))
		for key, value := range attributes {
			inner[key] = value
		}
		copied[name] = inner
	}
	return copied
}
