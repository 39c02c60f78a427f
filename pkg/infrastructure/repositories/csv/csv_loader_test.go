package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestParseCostTable(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(
		"\ufefffactory1,plastic,10,metal,5,,\n" +
			"factory2, plastic , 3,vent,0\n" +
			"factory1,plastic,12,,\n"))
	require.NoError(t, err)

	table, err := ParseCostTable(records)
	require.NoError(t, err)

	require.Contains(t, table, "factory1")
	assert.True(t, table["factory1"]["plastic"].Equal(decimal.NewFromInt(12)), "repeated key keeps the maximum")
	assert.True(t, table["factory1"]["metal"].Equal(decimal.NewFromInt(5)))
	assert.Len(t, table["factory1"], 2)

	_, offersVent := table["factory2"]["vent"]
	assert.True(t, offersVent)
	assert.True(t, table["factory2"]["plastic"].Equal(decimal.NewFromInt(3)))
}

func TestParseCostTable_InvalidValue(t *testing.T) {
	_, err := ParseCostTable([][]string{{"vent", "plastic", "lots"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lots")
}

func TestParseDemand(t *testing.T) {
	records, err := ReadRecords(strings.NewReader("hospital1, 5, 5\nhospital2,1,2,3\n"))
	require.NoError(t, err)

	rows, err := ParseDemand(records)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "hospital1", rows[0].Location)
	assert.Len(t, rows[0].Values, 2)
	// ragged rows are passed through for validation to reject
	assert.Len(t, rows[1].Values, 3)
}

func TestParseDemand_BlankCellsAreZero(t *testing.T) {
	records, err := ReadRecords(strings.NewReader("hospital1,5,\nhospital2,5,0\nhospital3,,4\n,,\n"))
	require.NoError(t, err)

	rows, err := ParseDemand(records)
	require.NoError(t, err)
	require.Len(t, rows, 3, "rows with no content are skipped")

	assert.Equal(t, len(rows[1].Values), len(rows[0].Values), "a trailing blank still counts as a day")
	for day := range rows[0].Values {
		assert.True(t, rows[0].Values[day].Equal(rows[1].Values[day]), "day %d", day+1)
	}
	require.Len(t, rows[2].Values, 2)
	assert.True(t, rows[2].Values[0].IsZero())
	assert.True(t, rows[2].Values[1].Equal(decimal.NewFromInt(4)))
}

func TestParseShipping(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		rows    int
		wantErr bool
	}{
		{"plain rows", "factory1,hospital1,100,1\nfactory2,hospital1,50,2.5\n", 2, false},
		{"with header", "from,to,capacity,cost_per_unit\nfactory1,hospital1,100,1\n", 1, false},
		{"missing column", "factory1,hospital1,100\n", 0, true},
		{"bad number", "factory1,hospital1,many,1\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ReadRecords(strings.NewReader(tt.input))
			require.NoError(t, err)

			rows, err := ParseShipping(records)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rows, tt.rows)
		})
	}
}

func TestLoader_LoadScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FactoriesFile, "factoryA,plastic,10,vent,0\nfactoryB,plastic,0,vent,0\n")
	writeFile(t, dir, RespiratorsFile, "vent,plastic,1\n")
	writeFile(t, dir, ResourcesFile, "plastic, metal\n")
	writeFile(t, dir, HospitalsFile, "hospital1,5,5\n")
	writeFile(t, dir, ShippingFile, "factoryA,hospital1,100,1\nfactoryB,hospital1,100,2\n")

	tables, err := NewLoader().LoadScenario(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"metal", "plastic"}, tables.Resources)
	assert.Empty(t, tables.PPE, "missing ppe file means no ppe items")
	assert.Len(t, tables.Factories, 2)
	assert.Len(t, tables.Shipping, 2)
	assert.True(t, tables.TotalDemand().Equal(decimal.NewFromInt(10)))
}

func TestLoader_MissingRequiredFile(t *testing.T) {
	_, err := NewLoader().LoadScenario(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), FactoriesFile)
}
