package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tbadun/co327-corona-lp/pkg/application/dto"
	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// Output file names written into the output directory
const (
	ResultFile     = "plan_result.json"
	TextFile       = "plan_result.txt"
	ProductionFile = "production.csv"
	ShipmentsFile  = "shipments.csv"
	ReserveFile    = "reserve.csv"
	ModelFile      = "coefficients.tsv"
)

// Config holds configuration for output generation
type Config struct {
	Format      string
	OutputDir   string
	Verbose     bool
	ElapsedTime time.Duration
	ScenarioDir string
	// Writer receives stdout output; nil means os.Stdout
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Formats lists the supported output formats
var Formats = []string{"text", "json", "csv"}

// Generate creates output in the specified format
func Generate(result *dto.PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput prints a human-readable report and mirrors it to a file
// when an output directory is given
func generateTextOutput(result *dto.PlanResult, config Config) error {
	out := config.writer()
	WriteText(out, result, config.ElapsedTime)

	if config.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, TextFile)
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create text file: %w", err)
	}
	defer f.Close()
	WriteText(f, result, config.ElapsedTime)

	if config.Verbose {
		fmt.Fprintf(out, "💾 Results saved to: %s\n", filename)
	}
	return nil
}

// WriteText writes the plan report
func WriteText(w io.Writer, result *dto.PlanResult, elapsed time.Duration) {
	fmt.Fprintf(w, "📊 Planning Results Summary\n")
	fmt.Fprintf(w, "===========================\n\n")

	fmt.Fprintf(w, "Run: %s\n", result.RunID)
	fmt.Fprintf(w, "Status: %s\n", result.Status)
	if result.Diagnostic != "" {
		fmt.Fprintf(w, "Diagnostic: %s\n", result.Diagnostic)
	}
	fmt.Fprintf(w, "Horizon: %d days\n", result.Horizon-1)
	fmt.Fprintf(w, "Variables: %d\n", result.Stats.Variables)
	fmt.Fprintf(w, "Rows: %d upper bounds, %d equalities\n", result.Stats.UpperBounds, result.Stats.Equalities)
	fmt.Fprintf(w, "Coefficients: %d\n", result.Stats.Coefficients)
	if result.ExportPath != "" {
		fmt.Fprintf(w, "Exported to: %s\n", result.ExportPath)
	}
	if elapsed > 0 {
		fmt.Fprintf(w, "Elapsed Time: %v\n", elapsed)
	}
	if result.Solved() {
		fmt.Fprintf(w, "Objective: %.4f\n", result.Objective)
		fmt.Fprintf(w, "Solve Time: %v\n", result.RunTime)
		fmt.Fprintf(w, "Reserve Units: %.4f\n", result.ReserveUnits)
	}
	fmt.Fprintln(w)

	if len(result.Production) > 0 {
		fmt.Fprintf(w, "🏭 Production:\n")
		fmt.Fprintf(w, "%-15s %-15s %-5s %-12s\n", "Equipment", "Factory", "Day", "Quantity")
		fmt.Fprintf(w, "%-15s %-15s %-5s %-12s\n", "---------------", "---------------", "-----", "------------")
		for _, line := range result.Production {
			fmt.Fprintf(w, "%-15s %-15s %-5d %-12.4f\n", line.Equipment, line.Factory, line.Day, line.Quantity)
		}
		fmt.Fprintln(w)
	}

	if len(result.Shipments) > 0 {
		fmt.Fprintf(w, "🚚 Shipments:\n")
		fmt.Fprintf(w, "%-15s %-15s %-15s %-5s %-12s\n", "Material", "Origin", "Destination", "Day", "Quantity")
		fmt.Fprintf(w, "%-15s %-15s %-15s %-5s %-12s\n",
			"---------------", "---------------", "---------------", "-----", "------------")
		for _, line := range result.Shipments {
			fmt.Fprintf(w, "%-15s %-15s %-15s %-5d %-12.4f\n",
				line.Material, line.Origin, line.Destination, line.Day, line.Quantity)
		}
		fmt.Fprintln(w)
	}

	if len(result.Reserve) > 0 {
		fmt.Fprintf(w, "⚠️  Reserve Usage:\n")
		fmt.Fprintf(w, "%-15s %-15s %-5s %-12s\n", "Equipment", "Destination", "Day", "Quantity")
		fmt.Fprintf(w, "%-15s %-15s %-5s %-12s\n", "---------------", "---------------", "-----", "------------")
		for _, line := range result.Reserve {
			fmt.Fprintf(w, "%-15s %-15s %-5d %-12.4f\n", line.Equipment, line.Destination, line.Day, line.Quantity)
		}
		fmt.Fprintln(w)
	}

	if len(result.Duplicates) > 0 {
		fmt.Fprintf(w, "🔁 Duplicate Lanes:\n")
		for _, d := range result.Duplicates {
			fmt.Fprintf(w, "  %s: kept cost %s, discarded cost %s\n", d.Lane, d.KeptCost, d.DiscardedCost)
		}
		fmt.Fprintln(w)
	}

	if len(result.Violations) > 0 {
		fmt.Fprintf(w, "❌ Violated Rows:\n")
		for _, name := range result.Violations {
			fmt.Fprintf(w, "  %s\n", name)
		}
		fmt.Fprintln(w)
	}
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.PlanResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, ResultFile)
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes production, shipments and reserve usage as CSV files
func generateCSVOutput(result *dto.PlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	productionFile := filepath.Join(config.OutputDir, ProductionFile)
	if err := writeCSV(productionFile, productionRecords(result.Production)); err != nil {
		return fmt.Errorf("failed to write production CSV: %w", err)
	}

	shipmentsFile := filepath.Join(config.OutputDir, ShipmentsFile)
	if err := writeCSV(shipmentsFile, shipmentRecords(result.Shipments)); err != nil {
		return fmt.Errorf("failed to write shipments CSV: %w", err)
	}

	reserveFile := filepath.Join(config.OutputDir, ReserveFile)
	if err := writeCSV(reserveFile, reserveRecords(result.Reserve)); err != nil {
		return fmt.Errorf("failed to write reserve CSV: %w", err)
	}

	if config.Verbose {
		out := config.writer()
		fmt.Fprintf(out, "💾 CSV results saved to:\n")
		fmt.Fprintf(out, "  Production: %s\n", productionFile)
		fmt.Fprintf(out, "  Shipments: %s\n", shipmentsFile)
		fmt.Fprintf(out, "  Reserve: %s\n", reserveFile)
	}
	return nil
}

// WriteModel dumps the coefficient matrix of a model into the output directory
func WriteModel(m *entities.Model, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, ModelFile)
	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create model file: %w", err)
	}
	defer f.Close()

	if _, err := m.Coefficients.WriteTo(f); err != nil {
		return "", fmt.Errorf("failed to write coefficients: %w", err)
	}
	return filename, nil
}

func productionRecords(lines []dto.ProductionLine) [][]string {
	records := [][]string{{"equipment", "factory", "day", "quantity"}}
	for _, line := range lines {
		records = append(records, []string{line.Equipment, line.Factory, strconv.Itoa(line.Day), formatQuantity(line.Quantity)})
	}
	return records
}

func shipmentRecords(lines []dto.ShipmentLine) [][]string {
	records := [][]string{{"material", "origin", "destination", "day", "quantity"}}
	for _, line := range lines {
		records = append(records, []string{
			line.Material, line.Origin, line.Destination, strconv.Itoa(line.Day), formatQuantity(line.Quantity),
		})
	}
	return records
}

func reserveRecords(lines []dto.ReserveLine) [][]string {
	records := [][]string{{"equipment", "destination", "day", "quantity"}}
	for _, line := range lines {
		records = append(records, []string{line.Equipment, line.Destination, strconv.Itoa(line.Day), formatQuantity(line.Quantity)})
	}
	return records
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func writeCSV(filename string, records [][]string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Close()
}
