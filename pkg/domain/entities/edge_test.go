package entities

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewEdge_Validation(t *testing.T) {
	one := decimal.NewFromInt(1)
	minus := decimal.NewFromInt(-1)

	testCases := []struct {
		name        string
		origin      string
		destination string
		capacity    decimal.Decimal
		cost        decimal.Decimal
		expectError string
	}{
		{"valid", "a", "b", one, one, ""},
		{"zero capacity", "a", "b", decimal.Zero, one, ""},
		{"empty origin", "", "b", one, one, "origin cannot be empty"},
		{"empty destination", "a", "", one, one, "destination cannot be empty"},
		{"self loop", "a", "a", one, one, "same location"},
		{"negative capacity", "a", "b", minus, one, "capacity cannot be negative"},
		{"negative cost", "a", "b", one, minus, "cost cannot be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			edge, err := NewEdge(tc.origin, tc.destination, tc.capacity, tc.cost)
			if tc.expectError == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				if edge.ID().String() != tc.origin+"->"+tc.destination {
					t.Errorf("Unexpected edge id %s", edge.ID())
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q", tc.expectError)
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestEdge_Preferred(t *testing.T) {
	edge := func(capacity, cost int64) Edge {
		return Edge{Origin: "a", Destination: "b", Capacity: decimal.NewFromInt(capacity), Cost: decimal.NewFromInt(cost)}
	}

	testCases := []struct {
		name     string
		e        Edge
		other    Edge
		expected bool
	}{
		{"cheaper wins", edge(1, 2), edge(100, 3), true},
		{"dearer loses", edge(100, 3), edge(1, 2), false},
		{"equal cost, larger capacity wins", edge(10, 2), edge(5, 2), true},
		{"identical rows keep the incumbent", edge(5, 2), edge(5, 2), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.e.Preferred(tc.other); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestLocation_DemandOn(t *testing.T) {
	hospital, err := NewHospital("hospital1", []decimal.Decimal{decimal.NewFromInt(5), decimal.NewFromInt(7)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := map[int]int64{0: 0, 1: 5, 2: 7, 3: 0}
	for day, want := range expected {
		if got := hospital.DemandOn(day); !got.Equal(decimal.NewFromInt(want)) {
			t.Errorf("Day %d: expected %d, got %s", day, want, got)
		}
	}

	if _, err := NewHospital(ReserveName, nil); err == nil {
		t.Error("Expected reserved name to be rejected")
	}
}

func TestLocation_Offers(t *testing.T) {
	factory, err := NewFactory("factoryA", map[string]decimal.Decimal{"plastic": decimal.NewFromInt(3), "vent": decimal.Zero})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !factory.Offers("vent") {
		t.Error("Expected factory to offer vent")
	}
	if factory.Offers("mask") {
		t.Error("Expected factory not to offer mask")
	}
	if !factory.InitialStock("plastic").Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected 3 plastic, got %s", factory.InitialStock("plastic"))
	}
	if NewReserve().Offers("vent") {
		t.Error("Reserve never manufactures")
	}
}
