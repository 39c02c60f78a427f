package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/application/services/model"
	"github.com/tbadun/co327-corona-lp/pkg/application/services/orchestration"
	"github.com/tbadun/co327-corona-lp/pkg/domain/repositories"
	"github.com/tbadun/co327-corona-lp/pkg/domain/services"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/events"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/repositories/csv"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/repositories/memory"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/repositories/sqlite"
	"github.com/tbadun/co327-corona-lp/pkg/infrastructure/solver/nextmv"
	"github.com/tbadun/co327-corona-lp/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	ScenarioDir string
	OutputDir   string
	Format      string
	Verbose     bool
	Help        bool

	// Solve hands the assembled model to the solver
	Solve          bool
	SolverProvider string
	SolveDuration  time.Duration

	// Export writes the model to the SQLite database at DBPath
	Export bool
	DBPath string

	// DumpModel writes the coefficient matrix into OutputDir
	DumpModel bool

	ReserveCapacity decimal.Decimal
	ReserveCost     decimal.Decimal
	ReserveStock    decimal.Decimal

	// Stdout receives progress and reports; nil means os.Stdout
	Stdout io.Writer
}

// PlanCommand assembles, optionally exports and optionally solves one scenario
type PlanCommand struct {
	config Config
	// newSolver is replaced in tests; the default loads the nextmv provider plugin
	newSolver func(Config) services.Solver
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &PlanCommand{
		config: config,
		newSolver: func(c Config) services.Solver {
			return nextmv.NewSolver(nextmv.Config{Provider: c.SolverProvider, Duration: c.SolveDuration})
		},
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if c.config.Verbose {
		c.printHeader()
		c.printf("📂 Loading scenario tables from CSV files...\n")
	}

	tables, err := csv.NewLoader().LoadScenario(c.config.ScenarioDir)
	if err != nil {
		return fmt.Errorf("error loading scenario: %w", err)
	}

	if c.config.Verbose {
		c.printf("✅ Data loaded successfully:\n")
		c.printf("  Factories: %d\n", len(tables.Factories))
		c.printf("  Respirators: %d\n", len(tables.Respirators))
		c.printf("  PPE: %d\n", len(tables.PPE))
		c.printf("  Resources: %d\n", len(tables.Resources))
		c.printf("  Hospitals: %d\n", len(tables.Demand))
		c.printf("  Shipping Lanes: %d\n", len(tables.Shipping))
		c.printf("\n")
	}

	scenarioRepo := memory.NewScenarioRepository()
	if err := scenarioRepo.LoadTables(tables); err != nil {
		return fmt.Errorf("failed to load tables into repository: %w", err)
	}

	assembler := model.NewAssembler(model.Config{
		ReserveCapacity: c.config.ReserveCapacity,
		ReserveCost:     c.config.ReserveCost,
		ReserveStock:    c.config.ReserveStock,
	})

	var solver services.Solver
	if c.config.Solve {
		solver = c.newSolver(c.config)
	}

	var modelRepo repositories.ModelRepository
	if c.config.Export {
		store, err := sqlite.NewModelStore(c.config.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open model database: %w", err)
		}
		defer store.Close()
		modelRepo = store
	}

	eventStore := events.NewInMemoryEventStore()
	if c.config.Verbose {
		if err := eventStore.Subscribe(events.PlanningEventTypes, &progressHandler{out: c.config.Stdout}); err != nil {
			return fmt.Errorf("failed to subscribe to planning events: %w", err)
		}
	}

	orchestrator := orchestration.NewPlanningOrchestrator(assembler, solver, modelRepo, eventStore)

	if c.config.Verbose {
		c.printf("🔄 Assembling model...\n")
	}

	startTime := time.Now()
	run, runErr := orchestrator.RunPlanning(ctx, scenarioRepo, orchestration.PlanOptions{
		Export: c.config.Export,
		Solve:  c.config.Solve,
	})
	elapsed := time.Since(startTime)

	if run == nil {
		return fmt.Errorf("error running planning: %w", runErr)
	}

	if c.config.Verbose {
		c.printf("✅ Planning finished in %v\n\n", elapsed)
	}

	if c.config.DumpModel {
		filename, err := output.WriteModel(run.Assembly.Model, c.config.OutputDir)
		if err != nil {
			return fmt.Errorf("error writing model: %w", err)
		}
		if c.config.Verbose {
			c.printf("💾 Coefficients saved to: %s\n", filename)
		}
	}

	err = output.Generate(run.Result, output.Config{
		Format:      c.config.Format,
		OutputDir:   c.config.OutputDir,
		Verbose:     c.config.Verbose,
		ElapsedTime: elapsed,
		ScenarioDir: c.config.ScenarioDir,
		Writer:      c.config.Stdout,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("error running planning: %w", runErr)
	}

	if c.config.Verbose {
		c.printf("🏁 Planning complete!\n")
	}
	return nil
}

// validateInputs validates the command configuration
func (c *PlanCommand) validateInputs() error {
	if c.config.ScenarioDir == "" {
		return fmt.Errorf("must specify a -scenario directory")
	}
	if info, err := os.Stat(c.config.ScenarioDir); err != nil || !info.IsDir() {
		return fmt.Errorf("scenario directory not found: %s", c.config.ScenarioDir)
	}
	if !slices.Contains(output.Formats, c.config.Format) {
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	if c.config.Format == "csv" && c.config.OutputDir == "" {
		return fmt.Errorf("csv format requires an -output directory")
	}
	if c.config.DumpModel && c.config.OutputDir == "" {
		return fmt.Errorf("-dump-model requires an -output directory")
	}
	if c.config.Export && c.config.DBPath == "" {
		return fmt.Errorf("-export requires a -db path")
	}
	for name, sentinel := range map[string]decimal.Decimal{
		"reserve capacity": c.config.ReserveCapacity,
		"reserve cost":     c.config.ReserveCost,
		"reserve stock":    c.config.ReserveStock,
	} {
		if !sentinel.IsPositive() {
			return fmt.Errorf("%s must be positive, got %s", name, sentinel)
		}
	}
	return nil
}

func (c *PlanCommand) printf(format string, args ...any) {
	fmt.Fprintf(c.config.Stdout, format, args...)
}

// printHeader prints the command header information
func (c *PlanCommand) printHeader() {
	c.printf("🚀 Corona LP Model Builder\n")
	c.printf("Scenario: %s\n", c.config.ScenarioDir)
	c.printf("Input files:\n")
	for _, name := range []string{
		csv.FactoriesFile, csv.RespiratorsFile, csv.PPEFile,
		csv.ResourcesFile, csv.HospitalsFile, csv.ShippingFile,
	} {
		c.printf("  %s\n", filepath.Join(c.config.ScenarioDir, name))
	}
	c.printf("Reserve: capacity %s, cost %s, stock %s\n",
		c.config.ReserveCapacity, c.config.ReserveCost, c.config.ReserveStock)
	if c.config.Solve {
		c.printf("Solver: %s (limit %v)\n", c.config.SolverProvider, c.config.SolveDuration)
	}
	if c.config.Export {
		c.printf("Database: %s\n", c.config.DBPath)
	}
	c.printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		c.printf("Output directory: %s\n", c.config.OutputDir)
	}
	c.printf("\n")
}

// progressHandler prints planning events as they are recorded
type progressHandler struct {
	out io.Writer
}

func (h *progressHandler) CanHandle(string) bool { return true }

func (h *progressHandler) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.TopologyBuilt:
		fmt.Fprintf(h.out, "🌐 Network: %d locations, %d lanes, %d materials, %d days\n",
			data.Locations, data.Edges, data.Materials, data.Horizon-1)
		if data.Duplicates > 0 {
			fmt.Fprintf(h.out, "  %d duplicate shipping rows collapsed\n", data.Duplicates)
		}
	case events.ModelAssembled:
		fmt.Fprintf(h.out, "🧮 Model: %d variables, %d upper bounds, %d equalities, %d coefficients\n",
			data.Variables, data.UpperBounds, data.Equalities, data.Coefficients)
	case events.ModelExported:
		fmt.Fprintf(h.out, "💾 Model exported to %s\n", data.Path)
	case events.SolveCompleted:
		fmt.Fprintf(h.out, "✅ Solved (%s) in %v, objective %.4f\n", data.Status, data.RunTime, data.Objective)
		if data.ReserveUnits > 0 {
			fmt.Fprintf(h.out, "⚠️  %.4f units drawn from the reserve\n", data.ReserveUnits)
		}
	case events.SolveFailed:
		fmt.Fprintf(h.out, "❌ Solve %s: %s\n", data.Status, data.Diagnostic)
	case events.PlanningFailed:
		fmt.Fprintf(h.out, "❌ %s failed: %s\n", data.Stage, data.Error)
	}
	return nil
}

// showHelp displays the help message
func (c *PlanCommand) showHelp() {
	c.printf(`Corona LP - Medical supply network model builder

USAGE:
    corona-lp -scenario <directory> [options]

OPTIONS:
    -scenario <dir>          Path to scenario directory containing CSV files
    -output <dir>            Output directory for results (optional)
    -format <fmt>            Output format: text, json, csv (default: text)
    -solve                   Solve the assembled model
    -solver <name>           Solver provider (default: highs)
    -duration <d>            Solve time limit (default: 10s)
    -export                  Export the model to SQLite
    -db <file>               SQLite database path for -export
    -dump-model              Write the coefficient matrix to the output directory
    -reserve-capacity <n>    Per-day capacity of reserve lanes
    -reserve-cost <n>        Unit cost of reserve lanes
    -reserve-stock <n>       Reserve stock of each equipment item
    -verbose                 Enable verbose output
    -help                    Show this help message

Defaults for the solver, reserve and database options are read from the
environment or a .env file:
    CORONA_LP_RESERVE_CAPACITY, CORONA_LP_RESERVE_COST, CORONA_LP_RESERVE_STOCK,
    CORONA_LP_SOLVE_DURATION, CORONA_LP_SOLVER, CORONA_LP_DB_PATH

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── factories.csv     # Resource stock per factory, plus offered equipment
    ├── respirators.csv   # Respirator recipes (optional)
    ├── ppe.csv           # PPE recipes (optional)
    ├── resources.csv     # Resource names
    ├── hospitals.csv     # Daily demand per hospital
    └── shipping.csv      # Shipping lanes

CSV FILE FORMATS:

factories.csv, respirators.csv, ppe.csv (name followed by key,value pairs):
    factoryA,plastic,10,vent,0

resources.csv:
    plastic,metal

hospitals.csv (one column per day):
    hospital1,0,5,5

shipping.csv:
    factoryA,hospital1,100,1

EXAMPLES:
    # Assemble and print model statistics
    corona-lp -scenario examples/single_resource -verbose

    # Solve with HiGHS and write JSON results
    corona-lp -scenario examples/regional -solve -format json -output results/

    # Export the model for an external solver
    corona-lp -scenario examples/regional -export -db results/models.db
`)
}
