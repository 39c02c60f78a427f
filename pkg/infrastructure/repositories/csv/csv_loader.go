package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// Scenario file names read by LoadScenario
const (
	FactoriesFile   = "factories.csv"
	RespiratorsFile = "respirators.csv"
	PPEFile         = "ppe.csv"
	ResourcesFile   = "resources.csv"
	HospitalsFile   = "hospitals.csv"
	ShippingFile    = "shipping.csv"
)

// Loader handles loading scenario tables from CSV files.
// Files carry no header row; a UTF-8 byte order mark is tolerated.
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadScenario loads every table of a scenario directory. The PPE and
// respirator files are optional; a missing file means no items of that class.
func (l *Loader) LoadScenario(dir string) (entities.Tables, error) {
	var tables entities.Tables
	var err error

	if tables.Factories, err = l.LoadCostTable(filepath.Join(dir, FactoriesFile)); err != nil {
		return tables, err
	}
	if tables.Respirators, err = l.loadOptionalCostTable(filepath.Join(dir, RespiratorsFile)); err != nil {
		return tables, err
	}
	if tables.PPE, err = l.loadOptionalCostTable(filepath.Join(dir, PPEFile)); err != nil {
		return tables, err
	}
	if tables.Resources, err = l.LoadList(filepath.Join(dir, ResourcesFile)); err != nil {
		return tables, err
	}
	if tables.Demand, err = l.LoadDemand(filepath.Join(dir, HospitalsFile)); err != nil {
		return tables, err
	}
	if tables.Shipping, err = l.LoadShipping(filepath.Join(dir, ShippingFile)); err != nil {
		return tables, err
	}
	return tables, nil
}

func (l *Loader) loadOptionalCostTable(filename string) (entities.CostTable, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return entities.CostTable{}, nil
	}
	return l.LoadCostTable(filename)
}

// LoadCostTable loads rows of the form name,key1,value1,key2,value2,...
// Blank pairs are skipped and a key repeated for the same name keeps its largest value.
func (l *Loader) LoadCostTable(filename string) (entities.CostTable, error) {
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	return ParseCostTable(records)
}

// ParseCostTable converts raw cost-table records
func ParseCostTable(records [][]string) (entities.CostTable, error) {
	table := make(entities.CostTable)
	for i, record := range records {
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		attributes, exists := table[name]
		if !exists {
			attributes = make(map[string]decimal.Decimal)
			table[name] = attributes
		}

		for j := 1; j < len(record); j += 2 {
			key := strings.TrimSpace(record[j])
			raw := ""
			if j+1 < len(record) {
				raw = strings.TrimSpace(record[j+1])
			}
			if key == "" && raw == "" {
				continue
			}
			if key == "" {
				return nil, fmt.Errorf("row %d: value %q has no key", i+1, raw)
			}
			value, err := parseQuantity(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", i+1, key, err)
			}
			if prev, seen := attributes[key]; seen {
				value = decimal.Max(prev, value)
			}
			attributes[key] = value
		}
	}
	return table, nil
}

// LoadList loads every non-blank cell of a file as a name, trimmed and sorted
func (l *Loader) LoadList(filename string) ([]string, error) {
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, record := range records {
		for _, cell := range record {
			if name := strings.TrimSpace(cell); name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadDemand loads rows of the form hospital,d1,d2,...
// Row lengths are kept as read so that ragged tables fail validation.
func (l *Loader) LoadDemand(filename string) ([]entities.DemandRecord, error) {
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	return ParseDemand(records)
}

// ParseDemand converts raw demand records. Every blank cell reads as zero
// demand, trailing ones included, so "h,5," and "h,5,0" describe the same
// two days. Rows with no content at all are skipped.
func ParseDemand(records [][]string) ([]entities.DemandRecord, error) {
	var rows []entities.DemandRecord
	for i, record := range records {
		if len(trimTrailingBlanks(record)) == 0 {
			continue
		}
		row := entities.DemandRecord{Location: strings.TrimSpace(record[0])}
		for day, raw := range record[1:] {
			value, err := parseQuantity(raw)
			if err != nil {
				return nil, fmt.Errorf("demand row %d day %d: %w", i+1, day+1, err)
			}
			row.Values = append(row.Values, value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadShipping loads rows of the form origin,destination,capacity,cost
func (l *Loader) LoadShipping(filename string) ([]entities.ShippingRecord, error) {
	records, err := readRecords(filename)
	if err != nil {
		return nil, err
	}
	return ParseShipping(records)
}

// ParseShipping converts raw shipping records. A leading header row is skipped.
func ParseShipping(records [][]string) ([]entities.ShippingRecord, error) {
	expectedHeader := []string{"from", "to", "capacity", "cost_per_unit"}

	var rows []entities.ShippingRecord
	for i, record := range records {
		cells := trimTrailingBlanks(record)
		if len(cells) == 0 {
			continue
		}
		if i == 0 && validateHeader(cells, expectedHeader) {
			continue
		}
		if len(cells) != len(expectedHeader) {
			return nil, fmt.Errorf("shipping row %d: expected %d columns, got %d", i+1, len(expectedHeader), len(cells))
		}

		capacity, err := parseQuantity(cells[2])
		if err != nil {
			return nil, fmt.Errorf("shipping row %d capacity: %w", i+1, err)
		}
		cost, err := parseQuantity(cells[3])
		if err != nil {
			return nil, fmt.Errorf("shipping row %d cost: %w", i+1, err)
		}

		rows = append(rows, entities.ShippingRecord{
			Origin:      strings.TrimSpace(cells[0]),
			Destination: strings.TrimSpace(cells[1]),
			Capacity:    capacity,
			Cost:        cost,
		})
	}
	return rows, nil
}

func readRecords(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := ReadRecords(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return records, nil
}

// ReadRecords reads variable-width records, dropping a byte order mark
func ReadRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func parseQuantity(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid quantity %q: %w", raw, err)
	}
	return value, nil
}

func trimTrailingBlanks(record []string) []string {
	end := len(record)
	for end > 0 && strings.TrimSpace(record[end-1]) == "" {
		end--
	}
	return record[:end]
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(actual[i])) != col {
			return false
		}
	}
	return true
}
