package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaterialKind separates raw resources from finished equipment
type MaterialKind int

const (
	Resource MaterialKind = iota
	Equipment
)

// String method for MaterialKind enum
func (k MaterialKind) String() string {
	switch k {
	case Resource:
		return "Resource"
	case Equipment:
		return "Equipment"
	default:
		return "Unknown"
	}
}

// EquipmentClass groups equipment items that satisfy the same hospital demand
type EquipmentClass int

const (
	NoClass EquipmentClass = iota
	PPE
	Respirators
)

// EquipmentClasses lists the demand classes in row-generation order
var EquipmentClasses = []EquipmentClass{PPE, Respirators}

// String method for EquipmentClass enum
func (c EquipmentClass) String() string {
	switch c {
	case PPE:
		return "ppe"
	case Respirators:
		return "respirators"
	default:
		return "none"
	}
}

// Material is anything held as inventory at a location
type Material struct {
	Name  string
	Kind  MaterialKind
	Class EquipmentClass
}

// IsEquipment reports whether the material is a finished good
func (m Material) IsEquipment() bool {
	return m.Kind == Equipment
}

// Recipe lists the resources consumed per unit of equipment produced
type Recipe struct {
	Equipment string
	Class     EquipmentClass
	Inputs    map[string]decimal.Decimal
}

// NewRecipe creates a validated Recipe
func NewRecipe(equipment string, class EquipmentClass, inputs map[string]decimal.Decimal) (*Recipe, error) {
	if equipment == "" {
		return nil, fmt.Errorf("equipment name cannot be empty")
	}
	if class == NoClass {
		return nil, fmt.Errorf("equipment %s must belong to a class", equipment)
	}
	copied := make(map[string]decimal.Decimal, len(inputs))
	for resource, qty := range inputs {
		if qty.IsNegative() {
			return nil, fmt.Errorf("recipe %s: quantity of %s cannot be negative, got %s", equipment, resource, qty)
		}
		copied[resource] = qty
	}
	return &Recipe{Equipment: equipment, Class: class, Inputs: copied}, nil
}

// QtyPer returns the quantity of resource consumed per unit, zero when unused
func (r Recipe) QtyPer(resource string) decimal.Decimal {
	return r.Inputs[resource]
}
