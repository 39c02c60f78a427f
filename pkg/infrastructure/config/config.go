package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Environment variables read by Load
const (
	EnvReserveCapacity = "CORONA_LP_RESERVE_CAPACITY"
	EnvReserveCost     = "CORONA_LP_RESERVE_COST"
	EnvReserveStock    = "CORONA_LP_RESERVE_STOCK"
	EnvSolveDuration   = "CORONA_LP_SOLVE_DURATION"
	EnvSolverProvider  = "CORONA_LP_SOLVER"
	EnvDBPath          = "CORONA_LP_DB_PATH"
)

// Settings are the environment-provided defaults for the CLI flags
type Settings struct {
	ReserveCapacity decimal.Decimal
	ReserveCost     decimal.Decimal
	ReserveStock    decimal.Decimal
	SolveDuration   time.Duration
	SolverProvider  string
	DBPath          string
}

// Defaults returns the settings used when nothing is configured
func Defaults() Settings {
	return Settings{
		ReserveCapacity: decimal.NewFromInt(1_000_000_000),
		ReserveCost:     decimal.NewFromInt(1_000_000_000),
		ReserveStock:    decimal.NewFromInt(1_000_000),
		SolveDuration:   10 * time.Second,
		SolverProvider:  "highs",
	}
}

// LoadEnv reads a .env file from the working directory when one exists.
// A missing file is not an error; system environment variables still apply.
func LoadEnv(filenames ...string) {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	if err := godotenv.Load(filenames...); err != nil {
		log.Printf("No %s file loaded. Using system environment variables.", strings.Join(filenames, ", "))
		return
	}
	log.Printf("Loaded environment variables from %s", strings.Join(filenames, ", "))
}

// FromEnv overlays environment variables on the defaults
func FromEnv() (Settings, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup overlays values from lookup on the defaults
func FromLookup(lookup func(string) (string, bool)) (Settings, error) {
	settings := Defaults()

	decimals := []struct {
		key    string
		target *decimal.Decimal
	}{
		{EnvReserveCapacity, &settings.ReserveCapacity},
		{EnvReserveCost, &settings.ReserveCost},
		{EnvReserveStock, &settings.ReserveStock},
	}
	for _, d := range decimals {
		raw, ok := lookup(d.key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		value, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return settings, fmt.Errorf("invalid %s %q: %w", d.key, raw, err)
		}
		if !value.IsPositive() {
			return settings, fmt.Errorf("%s must be positive, got %s", d.key, value)
		}
		*d.target = value
	}

	if raw, ok := lookup(EnvSolveDuration); ok && strings.TrimSpace(raw) != "" {
		duration, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return settings, fmt.Errorf("invalid %s %q: %w", EnvSolveDuration, raw, err)
		}
		settings.SolveDuration = duration
	}
	if raw, ok := lookup(EnvSolverProvider); ok && strings.TrimSpace(raw) != "" {
		settings.SolverProvider = strings.TrimSpace(raw)
	}
	if raw, ok := lookup(EnvDBPath); ok {
		settings.DBPath = strings.TrimSpace(raw)
	}

	return settings, nil
}
