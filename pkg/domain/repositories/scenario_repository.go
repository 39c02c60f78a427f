package repositories

import "github.com/tbadun/co327-corona-lp/pkg/domain/entities"

// ScenarioRepository provides access to the raw input tables of a planning run
type ScenarioRepository interface {
	GetFactories() (entities.CostTable, error)
	GetRecipes(class entities.EquipmentClass) (entities.CostTable, error)
	GetResources() ([]string, error)
	GetDemand() ([]entities.DemandRecord, error)
	GetShipping() ([]entities.ShippingRecord, error)
	GetTables() (entities.Tables, error)
	LoadTables(tables entities.Tables) error
}
