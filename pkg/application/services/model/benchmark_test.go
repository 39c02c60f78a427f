package model

import (
	"bytes"
	"testing"
	"time"

	testhelpers "github.com/tbadun/co327-corona-lp/pkg/infrastructure/testing"
)

var regionalScale = testhelpers.ScenarioConfig{
	Factories:   20,
	Hospitals:   40,
	Resources:   6,
	Respirators: 3,
	PPE:         4,
	Days:        14,
	LaneRatio:   0.25,
	MaxDemand:   50,
}

func BenchmarkAssemble_Regional(b *testing.B) {
	tables := testhelpers.NewScenarioSynthesizer(regionalScale).Synthesize()
	assembler := NewAssembler(DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := assembler.Assemble(tables); err != nil {
			b.Fatalf("Assemble failed: %v", err)
		}
	}
}

func BenchmarkAssemble_LongHorizon(b *testing.B) {
	config := regionalScale
	config.Factories = 5
	config.Hospitals = 10
	config.Days = 90
	tables := testhelpers.NewScenarioSynthesizer(config).Synthesize()
	assembler := NewAssembler(DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := assembler.Assemble(tables); err != nil {
			b.Fatalf("Assemble failed: %v", err)
		}
	}
}

// TestAssemble_LargeScale checks that a synthesized regional network assembles
// deterministically and passes the declaration checks
func TestAssemble_LargeScale(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping large scale test in short mode")
	}

	tables := testhelpers.NewScenarioSynthesizer(regionalScale).Synthesize()

	startTime := time.Now()
	first := assemble(t, tables)
	t.Logf("✅ Assembly completed in %v", time.Since(startTime))

	stats := first.Model.Stats()
	t.Logf("📊 Model Statistics:")
	t.Logf("  Variables: %d", stats.Variables)
	t.Logf("  Upper Bounds: %d", stats.UpperBounds)
	t.Logf("  Equalities: %d", stats.Equalities)
	t.Logf("  Coefficients: %d", stats.Coefficients)

	if err := CheckDeclarations(first.Model); err != nil {
		t.Fatalf("declaration check failed: %v", err)
	}

	second := assemble(t, tables)
	var a, b bytes.Buffer
	if _, err := first.Model.Coefficients.WriteTo(&a); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if _, err := second.Model.Coefficients.WriteTo(&b); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two assemblies of the same tables serialized differently")
	}
}
