package entities

import "fmt"

// VarKind tags a decision variable with the quantity it measures
type VarKind int

const (
	RespiratorMade VarKind = iota
	PPEMade
	OnHand
	Shipped
	TotalShipped
	ReserveSeed
)

// String method for VarKind enum
func (k VarKind) String() string {
	switch k {
	case RespiratorMade:
		return "RespiratorMade"
	case PPEMade:
		return "PPEMade"
	case OnHand:
		return "OnHand"
	case Shipped:
		return "Shipped"
	case TotalShipped:
		return "TotalShipped"
	case ReserveSeed:
		return "ReserveSeed"
	default:
		return "Unknown"
	}
}

// IsProduction reports whether the kind counts units manufactured
func (k VarKind) IsProduction() bool {
	return k == RespiratorMade || k == PPEMade
}

// VarKey identifies a decision variable by its full index tuple.
// Origin holds the location for single-location kinds; Destination is only
// set for kinds that move material over an edge.
type VarKey struct {
	Kind        VarKind
	Item        string
	Origin      string
	Destination string
	Day         int
}

// ProductionVar returns the production variable for equipment of the given class
func ProductionVar(class EquipmentClass, equipment, factory string, day int) VarKey {
	kind := PPEMade
	if class == Respirators {
		kind = RespiratorMade
	}
	return VarKey{Kind: kind, Item: equipment, Origin: factory, Day: day}
}

// OnHandVar returns the on-hand inventory variable
func OnHandVar(material, location string, day int) VarKey {
	return VarKey{Kind: OnHand, Item: material, Origin: location, Day: day}
}

// ShippedVar returns the per-material shipped variable for an edge
func ShippedVar(material string, edge EdgeID, day int) VarKey {
	return VarKey{Kind: Shipped, Item: material, Origin: edge.Origin, Destination: edge.Destination, Day: day}
}

// TotalShippedVar returns the aggregate shipped variable for an edge
func TotalShippedVar(edge EdgeID, day int) VarKey {
	return VarKey{Kind: TotalShipped, Origin: edge.Origin, Destination: edge.Destination, Day: day}
}

// SeedVar returns the day-zero shipment of equipment over a Reserve edge
func SeedVar(equipment string, edge EdgeID) VarKey {
	return VarKey{Kind: ReserveSeed, Item: equipment, Origin: edge.Origin, Destination: edge.Destination, Day: 0}
}

// Edge returns the edge a shipping variable travels over
func (k VarKey) Edge() EdgeID {
	return EdgeID{Origin: k.Origin, Destination: k.Destination}
}

// String serializes the key for the solver boundary
func (k VarKey) String() string {
	switch k.Kind {
	case RespiratorMade:
		return fmt.Sprintf("x_%s_%s_%d", k.Item, k.Origin, k.Day)
	case PPEMade:
		return fmt.Sprintf("y_%s_%s_%d", k.Item, k.Origin, k.Day)
	case OnHand:
		return fmt.Sprintf("M_%s_%s_%d", k.Item, k.Origin, k.Day)
	case Shipped, ReserveSeed:
		return fmt.Sprintf("z_%s_%s_%d", k.Item, k.Edge(), k.Day)
	case TotalShipped:
		return fmt.Sprintf("s_%s_%d", k.Edge(), k.Day)
	default:
		return fmt.Sprintf("unknown_%s_%s_%d", k.Item, k.Origin, k.Day)
	}
}

// RowFamily tags a constraint row with the relation it encodes
type RowFamily int

const (
	ManufacturingRow RowFamily = iota
	DemandRow
	AvailabilityRow
	CapacityRow
	OnHandRow
	ShippedRow
)

// String method for RowFamily enum
func (f RowFamily) String() string {
	switch f {
	case ManufacturingRow:
		return "manufacturing"
	case DemandRow:
		return "demand"
	case AvailabilityRow:
		return "availability"
	case CapacityRow:
		return "capacities"
	case OnHandRow:
		return "onhand"
	case ShippedRow:
		return "shipped"
	default:
		return "unknown"
	}
}

// IsEquality reports whether rows of the family are equalities rather than upper bounds
func (f RowFamily) IsEquality() bool {
	return f == OnHandRow || f == ShippedRow
}

// RowKey identifies a constraint row. Item is a material name, or an
// equipment class name for demand rows.
type RowKey struct {
	Family      RowFamily
	Item        string
	Origin      string
	Destination string
	Day         int
}

// ManufacturingKey returns the resource-consumption row of a factory
func ManufacturingKey(resource, factory string, day int) RowKey {
	return RowKey{Family: ManufacturingRow, Item: resource, Origin: factory, Day: day}
}

// DemandKey returns the demand row of a hospital for an equipment class
func DemandKey(class EquipmentClass, hospital string, day int) RowKey {
	return RowKey{Family: DemandRow, Item: class.String(), Origin: hospital, Day: day}
}

// AvailabilityKey returns the ship-at-most-on-hand row
func AvailabilityKey(material, location string, day int) RowKey {
	return RowKey{Family: AvailabilityRow, Item: material, Origin: location, Day: day}
}

// CapacityKey returns the shipping capacity row of an edge
func CapacityKey(edge EdgeID, day int) RowKey {
	return RowKey{Family: CapacityRow, Origin: edge.Origin, Destination: edge.Destination, Day: day}
}

// OnHandKey returns the inventory balance row
func OnHandKey(material, location string, day int) RowKey {
	return RowKey{Family: OnHandRow, Item: material, Origin: location, Day: day}
}

// ShippedKey returns the row tying the aggregate shipped variable to its materials
func ShippedKey(edge EdgeID, day int) RowKey {
	return RowKey{Family: ShippedRow, Origin: edge.Origin, Destination: edge.Destination, Day: day}
}

// Edge returns the edge an edge-scoped row belongs to
func (k RowKey) Edge() EdgeID {
	return EdgeID{Origin: k.Origin, Destination: k.Destination}
}

// String serializes the key for the solver boundary
func (k RowKey) String() string {
	switch k.Family {
	case CapacityRow, ShippedRow:
		return fmt.Sprintf("%s_%s_%d", k.Family, k.Edge(), k.Day)
	default:
		return fmt.Sprintf("%s_%s_%s_%d", k.Family, k.Item, k.Origin, k.Day)
	}
}

// Cell addresses one coefficient of the constraint matrix
type Cell struct {
	Var VarKey
	Row RowKey
}

// String returns the cell as (variable, row)
func (c Cell) String() string {
	return "(" + c.Var.String() + ", " + c.Row.String() + ")"
}
