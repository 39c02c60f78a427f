package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
	testhelpers "github.com/tbadun/co327-corona-lp/pkg/infrastructure/testing"
)

func TestBounds_RightHandSides(t *testing.T) {
	asm := assemble(t, testhelpers.BuildRegionalScenario())
	m := asm.Model
	config := DefaultConfig()

	north := entities.EdgeID{Origin: "northplant", Destination: "stmarys"}
	reserveToStmarys := entities.EdgeID{Origin: entities.ReserveName, Destination: "stmarys"}

	tests := []struct {
		row      entities.RowKey
		want     decimal.Decimal
		equality bool
	}{
		{entities.ManufacturingKey("cloth", "northplant", 2), decimal.Zero, false},
		{entities.DemandKey(entities.PPE, "stmarys", 3), decimal.NewFromInt(-6), false},
		{entities.DemandKey(entities.Respirators, "general", 2), decimal.NewFromInt(-2), false},
		{entities.DemandKey(entities.PPE, "general", 1), decimal.Zero, false},
		{entities.AvailabilityKey("vent", "northplant", 1), decimal.Zero, false},
		{entities.CapacityKey(north, 1), decimal.NewFromInt(20), false},
		{entities.CapacityKey(reserveToStmarys, 2), config.ReserveCapacity, false},
		{entities.OnHandKey("cloth", "northplant", 1), decimal.NewFromInt(40), true},
		{entities.OnHandKey("cloth", "northplant", 2), decimal.Zero, true},
		{entities.OnHandKey("vent", "northplant", 1), decimal.Zero, true},
		{entities.OnHandKey("mask", entities.ReserveName, 1), config.ReserveStock, true},
		{entities.OnHandKey("mask", entities.ReserveName, 3), config.ReserveStock, true},
		{entities.OnHandKey("metal", entities.ReserveName, 2), decimal.Zero, true},
		{entities.ShippedKey(north, 3), decimal.Zero, true},
	}

	for _, tt := range tests {
		t.Run(tt.row.String(), func(t *testing.T) {
			rhs, equality, ok := m.RHS(tt.row)
			require.True(t, ok, "row %s not declared", tt.row)
			assert.Equal(t, tt.equality, equality)
			assert.True(t, tt.want.Equal(rhs), "expected %s, got %s", tt.want, rhs)
		})
	}
}

func TestBounds_FamiliesAreDisjoint(t *testing.T) {
	topo, err := BuildTopology(testhelpers.BuildRegionalScenario(), DefaultConfig())
	require.NoError(t, err)

	upper, err := mergeBounds(UpperBoundFamilies(topo))
	require.NoError(t, err)
	equalities, err := mergeBounds(EqualityFamilies(topo))
	require.NoError(t, err)

	for row := range upper {
		assert.False(t, row.Family.IsEquality(), "%s is in the upper bounds", row)
		_, both := equalities[row]
		assert.False(t, both, "%s is both an upper bound and an equality", row)
	}
	for row := range equalities {
		assert.True(t, row.Family.IsEquality(), "%s is in the equalities", row)
	}
}

func TestBounds_NoDemandRowsForEmptyClass(t *testing.T) {
	// the single resource scenario has respirators only
	asm := assemble(t, testhelpers.BuildSingleResourceScenario(5, 5))

	_, _, ok := asm.Model.RHS(entities.DemandKey(entities.PPE, "hospital1", 1))
	assert.False(t, ok)
	_, _, ok = asm.Model.RHS(entities.DemandKey(entities.Respirators, "hospital1", 1))
	assert.True(t, ok)
}

func TestBounds_HorizonOfOne(t *testing.T) {
	asm := assemble(t, testhelpers.BuildSingleResourceScenario())
	m := asm.Model

	assert.Empty(t, m.UpperBounds)
	require.NotEmpty(t, m.Equalities)
	for row := range m.Equalities {
		assert.Equal(t, entities.OnHandRow, row.Family, "unexpected row %s", row)
		assert.Equal(t, 1, row.Day)
	}
	assert.Empty(t, m.Objective)
}
