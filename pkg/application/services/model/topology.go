package model

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlath/core"
	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	"github.com/tbadun/co327-corona-lp/pkg/domain/services"
)

// Config holds the sentinels used to wire the reserve into the network
type Config struct {
	// ReserveCapacity is the per-day capacity of every reserve edge
	ReserveCapacity decimal.Decimal
	// ReserveCost is the unit cost of every reserve edge and day-zero seed
	ReserveCost decimal.Decimal
	// ReserveStock is the constant on-hand quantity of each equipment item at the reserve
	ReserveStock decimal.Decimal
}

// DefaultConfig returns sentinels large enough for realistic scenarios
func DefaultConfig() Config {
	return Config{
		ReserveCapacity: decimal.NewFromInt(1_000_000_000),
		ReserveCost:     decimal.NewFromInt(1_000_000_000),
		ReserveStock:    decimal.NewFromInt(1_000_000),
	}
}

// Topology is the augmented network a model is generated from
type Topology struct {
	Locations  []entities.Location
	Edges      []entities.Edge
	Materials  []entities.Material
	Recipes    map[string]entities.Recipe
	Duplicates []services.DuplicateEdge
	Config     Config

	// Horizon is the width of a demand row including its location column
	Horizon int

	locationIndex map[string]int
	edgeIndex     map[entities.EdgeID]int

	// lanes holds every edge origin->destination; reversed holds the same
	// edges pointing back, so Neighbors answers both directions.
	lanes     *core.Graph
	reversed  *core.Graph
	laneIndex map[string]int
	revIndex  map[string]int
	outgoing  map[string][]entities.EdgeID
	incoming  map[string][]entities.EdgeID
}

// BuildTopology validates the input tables and derives the augmented network:
// factories (by name), the reserve, then hospitals (in demand-table order);
// canonical input edges followed by one reserve edge per real location.
func BuildTopology(tables entities.Tables, config Config) (*Topology, error) {
	validation := services.NewTableValidator().ValidateTables(tables)
	if err := validation.Err(); err != nil {
		return nil, err
	}

	totalDemand := tables.TotalDemand()
	if !config.ReserveCapacity.GreaterThan(totalDemand) {
		return nil, fmt.Errorf("reserve capacity %s, total demand %s: %w",
			config.ReserveCapacity, totalDemand, entities.ErrSentinelTooSmall)
	}
	if !config.ReserveStock.GreaterThan(totalDemand) {
		return nil, fmt.Errorf("reserve stock %s, total demand %s: %w",
			config.ReserveStock, totalDemand, entities.ErrSentinelTooSmall)
	}

	topo := &Topology{
		Recipes:       make(map[string]entities.Recipe),
		Config:        config,
		Horizon:       len(tables.Demand[0].Values) + 1,
		locationIndex: make(map[string]int),
		edgeIndex:     make(map[entities.EdgeID]int),
		lanes:         core.NewGraph(core.WithDirected(true)),
		reversed:      core.NewGraph(core.WithDirected(true)),
		laneIndex:     make(map[string]int),
		revIndex:      make(map[string]int),
		outgoing:      make(map[string][]entities.EdgeID),
		incoming:      make(map[string][]entities.EdgeID),
	}

	if err := topo.addLocations(tables); err != nil {
		return nil, err
	}
	if err := topo.addMaterials(tables); err != nil {
		return nil, err
	}
	if err := topo.addEdges(tables.Shipping); err != nil {
		return nil, err
	}

	return topo, nil
}

func (t *Topology) addLocations(tables entities.Tables) error {
	factoryNames := make([]string, 0, len(tables.Factories))
	for name := range tables.Factories {
		factoryNames = append(factoryNames, name)
	}
	sort.Strings(factoryNames)

	for _, name := range factoryNames {
		factory, err := entities.NewFactory(name, tables.Factories[name])
		if err != nil {
			return fmt.Errorf("failed to create factory: %w", err)
		}
		t.addLocation(*factory)
	}

	t.addLocation(*entities.NewReserve())

	for _, row := range tables.Demand {
		hospital, err := entities.NewHospital(row.Location, row.Values)
		if err != nil {
			return fmt.Errorf("failed to create hospital: %w", err)
		}
		t.addLocation(*hospital)
	}
	return nil
}

func (t *Topology) addLocation(location entities.Location) {
	t.locationIndex[location.Name] = len(t.Locations)
	t.Locations = append(t.Locations, location)
}

func (t *Topology) addMaterials(tables entities.Tables) error {
	for _, name := range tables.Resources {
		t.Materials = append(t.Materials, entities.Material{Name: name, Kind: entities.Resource})
	}

	for _, class := range entities.EquipmentClasses {
		table := tables.PPE
		if class == entities.Respirators {
			table = tables.Respirators
		}
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			recipe, err := entities.NewRecipe(name, class, table[name])
			if err != nil {
				return fmt.Errorf("failed to create recipe: %w", err)
			}
			t.Recipes[name] = *recipe
			t.Materials = append(t.Materials, entities.Material{Name: name, Kind: entities.Equipment, Class: class})
		}
	}
	return nil
}

func (t *Topology) addEdges(rows []entities.ShippingRecord) error {
	edges, duplicates := services.CanonicalizeEdges(rows)
	t.Duplicates = duplicates

	for _, location := range t.Locations {
		if location.Kind == entities.Reserve {
			continue
		}
		reserveEdge, err := entities.NewEdge(entities.ReserveName, location.Name, t.Config.ReserveCapacity, t.Config.ReserveCost)
		if err != nil {
			return fmt.Errorf("failed to create reserve edge: %w", err)
		}
		edges = append(edges, *reserveEdge)
	}

	for _, location := range t.Locations {
		if err := t.lanes.AddVertex(location.Name); err != nil {
			return fmt.Errorf("failed to add location %s: %w", location.Name, err)
		}
		if err := t.reversed.AddVertex(location.Name); err != nil {
			return fmt.Errorf("failed to add location %s: %w", location.Name, err)
		}
	}

	for _, edge := range edges {
		if _, exists := t.edgeIndex[edge.ID()]; exists {
			return fmt.Errorf("edge %s: %w", edge.ID(), entities.ErrDuplicateKey)
		}
		index := len(t.Edges)
		t.edgeIndex[edge.ID()] = index
		t.Edges = append(t.Edges, edge)

		laneID, err := t.lanes.AddEdge(edge.Origin, edge.Destination, 0)
		if err != nil {
			return fmt.Errorf("failed to add lane %s: %w", edge.ID(), err)
		}
		t.laneIndex[laneID] = index

		revID, err := t.reversed.AddEdge(edge.Destination, edge.Origin, 0)
		if err != nil {
			return fmt.Errorf("failed to add lane %s: %w", edge.ID(), err)
		}
		t.revIndex[revID] = index
	}

	for _, location := range t.Locations {
		out, err := t.adjacent(t.lanes, t.laneIndex, location.Name)
		if err != nil {
			return err
		}
		in, err := t.adjacent(t.reversed, t.revIndex, location.Name)
		if err != nil {
			return err
		}
		t.outgoing[location.Name] = out
		t.incoming[location.Name] = in
	}
	return nil
}

// adjacent lists the lanes graph stores next to a location, in edge order.
// The graph orders neighbours by its own edge IDs, which are not positional.
func (t *Topology) adjacent(graph *core.Graph, index map[string]int, name string) ([]entities.EdgeID, error) {
	neighbors, err := graph.Neighbors(name)
	if err != nil {
		return nil, fmt.Errorf("failed to list lanes at %s: %w", name, err)
	}
	positions := make([]int, 0, len(neighbors))
	for _, e := range neighbors {
		positions = append(positions, index[e.ID])
	}
	sort.Ints(positions)

	ids := make([]entities.EdgeID, 0, len(positions))
	for _, i := range positions {
		ids = append(ids, t.Edges[i].ID())
	}
	return ids, nil
}

// Days returns the number of modeled production and shipping days
func (t *Topology) Days() int {
	return t.Horizon - 1
}

// OnHandDays returns the number of days carrying on-hand variables; day 1 always exists
func (t *Topology) OnHandDays() int {
	if t.Days() < 1 {
		return 1
	}
	return t.Days()
}

// Location looks up a location by name
func (t *Topology) Location(name string) (entities.Location, bool) {
	i, ok := t.locationIndex[name]
	if !ok {
		return entities.Location{}, false
	}
	return t.Locations[i], true
}

// Edge looks up an edge by lane
func (t *Topology) Edge(id entities.EdgeID) (entities.Edge, bool) {
	i, ok := t.edgeIndex[id]
	if !ok {
		return entities.Edge{}, false
	}
	return t.Edges[i], true
}

// Outgoing returns the lanes leaving a location in edge order
func (t *Topology) Outgoing(name string) []entities.EdgeID {
	return t.outgoing[name]
}

// Incoming returns the lanes arriving at a location in edge order
func (t *Topology) Incoming(name string) []entities.EdgeID {
	return t.incoming[name]
}

// LocationsOfKind returns the locations with the given role in location order
func (t *Topology) LocationsOfKind(kind entities.LocationKind) []entities.Location {
	var out []entities.Location
	for _, location := range t.Locations {
		if location.Kind == kind {
			out = append(out, location)
		}
	}
	return out
}

// Resources returns the resource materials in material order
func (t *Topology) Resources() []entities.Material {
	var out []entities.Material
	for _, m := range t.Materials {
		if m.Kind == entities.Resource {
			out = append(out, m)
		}
	}
	return out
}

// EquipmentOfClass returns the equipment materials of a demand class in material order
func (t *Topology) EquipmentOfClass(class entities.EquipmentClass) []entities.Material {
	var out []entities.Material
	for _, m := range t.Materials {
		if m.IsEquipment() && m.Class == class {
			out = append(out, m)
		}
	}
	return out
}

// Offered returns the recipes a factory can run in material order
func (t *Topology) Offered(factory entities.Location) []entities.Recipe {
	var out []entities.Recipe
	for _, m := range t.Materials {
		if m.IsEquipment() && factory.Offers(m.Name) {
			out = append(out, t.Recipes[m.Name])
		}
	}
	return out
}

// ReserveEdges returns the edges leaving the reserve in edge order
func (t *Topology) ReserveEdges() []entities.Edge {
	var out []entities.Edge
	for _, id := range t.outgoing[entities.ReserveName] {
		edge, _ := t.Edge(id)
		out = append(out, edge)
	}
	return out
}
