package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/config"
	"github.com/tbadun/co327-corona-lp/pkg/interfaces/cli/commands"
)

func main() {
	config.LoadEnv()
	settings, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		outputDir       = flag.String("output", "", "Output directory for results (optional)")
		format          = flag.String("format", "text", "Output format: text, json, csv")
		verbose         = flag.Bool("verbose", false, "Enable verbose output")
		solve           = flag.Bool("solve", false, "Solve the assembled model")
		solverProvider  = flag.String("solver", settings.SolverProvider, "Solver provider")
		solveDuration   = flag.Duration("duration", settings.SolveDuration, "Solve time limit")
		export          = flag.Bool("export", false, "Export the model to SQLite")
		dbPath          = flag.String("db", settings.DBPath, "SQLite database path for -export")
		dumpModel       = flag.Bool("dump-model", false, "Write the coefficient matrix to the output directory")
		reserveCapacity = flag.String("reserve-capacity", settings.ReserveCapacity.String(), "Per-day capacity of reserve lanes")
		reserveCost     = flag.String("reserve-cost", settings.ReserveCost.String(), "Unit cost of reserve lanes")
		reserveStock    = flag.String("reserve-stock", settings.ReserveStock.String(), "Reserve stock of each equipment item")
		help            = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	sentinels := make(map[string]decimal.Decimal, 3)
	for name, raw := range map[string]string{
		"reserve-capacity": *reserveCapacity,
		"reserve-cost":     *reserveCost,
		"reserve-stock":    *reserveStock,
	} {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -%s %q: %v\n", name, raw, err)
			os.Exit(2)
		}
		sentinels[name] = value
	}

	// Create command configuration
	cfg := commands.Config{
		ScenarioDir:     *scenarioDir,
		OutputDir:       *outputDir,
		Format:          *format,
		Verbose:         *verbose,
		Help:            *help,
		Solve:           *solve,
		SolverProvider:  *solverProvider,
		SolveDuration:   *solveDuration,
		Export:          *export,
		DBPath:          *dbPath,
		DumpModel:       *dumpModel,
		ReserveCapacity: sentinels["reserve-capacity"],
		ReserveCost:     sentinels["reserve-cost"],
		ReserveStock:    sentinels["reserve-stock"],
	}

	// Create and execute command
	cmd := commands.NewPlanCommand(cfg)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
