package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// TableValidator checks raw input tables before any model assembly
type TableValidator struct{}

// NewTableValidator creates a new table validator
func NewTableValidator() *TableValidator {
	return &TableValidator{}
}

// ValidationResult contains the problems found in a set of input tables
type ValidationResult struct {
	Errors []error
}

// Valid reports whether no problem was found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns nil for valid tables, otherwise one error wrapping
// ErrInvalidTables and every individual problem
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("%w: %w", entities.ErrInvalidTables, errors.Join(r.Errors...))
}

func (r *ValidationResult) addf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Errorf(format, args...))
}

// ValidateTables performs every shape and namespace check on the input tables
func (v *TableValidator) ValidateTables(tables entities.Tables) *ValidationResult {
	result := &ValidationResult{Errors: make([]error, 0)}

	resources := v.validateResources(tables.Resources, result)
	equipment := v.validateRecipes(tables, resources, result)
	hospitals := v.validateDemand(tables.Demand, result)
	factories := v.validateFactories(tables.Factories, resources, equipment, hospitals, result)
	v.validateShipping(tables.Shipping, factories, hospitals, result)

	return result
}

func (v *TableValidator) validateResources(resources []string, result *ValidationResult) map[string]bool {
	seen := make(map[string]bool, len(resources))
	for i, name := range resources {
		if name == "" {
			result.addf("resource %d has an empty name", i+1)
			continue
		}
		if seen[name] {
			result.addf("resource %s is listed twice", name)
		}
		seen[name] = true
	}
	return seen
}

func (v *TableValidator) validateRecipes(tables entities.Tables, resources map[string]bool, result *ValidationResult) map[string]bool {
	equipment := make(map[string]bool)
	check := func(table entities.CostTable, class entities.EquipmentClass) {
		for _, name := range sortedNames(table) {
			if name == "" {
				result.addf("%s recipe has an empty name", class)
				continue
			}
			if equipment[name] {
				result.addf("equipment %s appears in more than one recipe table", name)
			}
			if resources[name] {
				result.addf("equipment %s has the same name as a resource", name)
			}
			equipment[name] = true
			for _, resource := range sortedNames(table[name]) {
				if !resources[resource] {
					result.addf("recipe %s uses unknown resource %s", name, resource)
				}
				if table[name][resource].IsNegative() {
					result.addf("recipe %s: quantity of %s cannot be negative", name, resource)
				}
			}
		}
	}
	check(tables.PPE, entities.PPE)
	check(tables.Respirators, entities.Respirators)
	return equipment
}

func (v *TableValidator) validateDemand(rows []entities.DemandRecord, result *ValidationResult) map[string]bool {
	hospitals := make(map[string]bool, len(rows))
	if len(rows) == 0 {
		result.addf("demand table must have at least one hospital row")
		return hospitals
	}
	width := len(rows[0].Values)
	for i, row := range rows {
		switch {
		case row.Location == "":
			result.addf("demand row %d has an empty location name", i+1)
		case row.Location == entities.ReserveName:
			result.addf("demand row %d: location name %s is reserved", i+1, row.Location)
		case hospitals[row.Location]:
			result.addf("hospital %s has more than one demand row", row.Location)
		}
		hospitals[row.Location] = true
		if len(row.Values) != width {
			result.Errors = append(result.Errors, fmt.Errorf("hospital %s has %d demand values, expected %d: %w",
				row.Location, len(row.Values), width, entities.ErrRaggedDemand))
		}
		for day, qty := range row.Values {
			if qty.IsNegative() {
				result.addf("hospital %s: demand on day %d cannot be negative", row.Location, day+1)
			}
		}
	}
	return hospitals
}

func (v *TableValidator) validateFactories(table entities.CostTable, resources, equipment, hospitals map[string]bool, result *ValidationResult) map[string]bool {
	factories := make(map[string]bool, len(table))
	for _, name := range sortedNames(table) {
		switch {
		case name == "":
			result.addf("factory table has an empty name")
			continue
		case name == entities.ReserveName:
			result.addf("factory name %s is reserved", name)
			continue
		case hospitals[name]:
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", name, entities.ErrNameCollision))
		}
		factories[name] = true
		for _, item := range sortedNames(table[name]) {
			if !resources[item] && !equipment[item] {
				result.addf("factory %s lists unknown item %s", name, item)
			}
			if table[name][item].IsNegative() {
				result.addf("factory %s: stock of %s cannot be negative", name, item)
			}
		}
	}
	return factories
}

func (v *TableValidator) validateShipping(rows []entities.ShippingRecord, factories, hospitals map[string]bool, result *ValidationResult) {
	known := func(name string) bool { return factories[name] || hospitals[name] }
	for i, row := range rows {
		if row.Destination == entities.ReserveName {
			result.Errors = append(result.Errors, fmt.Errorf("shipping row %d (%s->%s): %w",
				i+1, row.Origin, row.Destination, entities.ErrReserveDestination))
			continue
		}
		if !known(row.Origin) {
			result.Errors = append(result.Errors, fmt.Errorf("shipping row %d origin %q: %w", i+1, row.Origin, entities.ErrUnknownLocation))
		}
		if !known(row.Destination) {
			result.Errors = append(result.Errors, fmt.Errorf("shipping row %d destination %q: %w", i+1, row.Destination, entities.ErrUnknownLocation))
		}
		if _, err := entities.NewEdge(row.Origin, row.Destination, row.Capacity, row.Cost); err != nil {
			result.addf("shipping row %d: %v", i+1, err)
		}
	}
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
