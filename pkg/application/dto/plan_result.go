package dto

import (
	"time"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// PlanResult contains the complete output of a planning run
type PlanResult struct {
	RunID      string              `json:"run_id"`
	PlannedAt  time.Time           `json:"planned_at"`
	Status     string              `json:"status"`
	Diagnostic string              `json:"diagnostic,omitempty"`
	Objective  float64             `json:"objective"`
	RunTime    time.Duration       `json:"run_time"`
	Stats      entities.ModelStats `json:"-"`
	Horizon    int                 `json:"horizon"`
	ExportPath string              `json:"export_path,omitempty"`

	Production []ProductionLine `json:"production"`
	Shipments  []ShipmentLine   `json:"shipments"`
	Reserve    []ReserveLine    `json:"reserve"`
	// ReserveUnits is the total equipment drawn from the reserve, seeds included
	ReserveUnits float64 `json:"reserve_units"`

	Violations []string        `json:"violations,omitempty"`
	Duplicates []DuplicateLane `json:"duplicate_lanes,omitempty"`
}

// Solved reports whether the run produced an assignment
func (r *PlanResult) Solved() bool {
	return r.Status == entities.Optimal.String() || r.Status == entities.Suboptimal.String()
}

// ProductionLine is the quantity of equipment a factory manufactures on a day
type ProductionLine struct {
	Equipment string  `json:"equipment"`
	Factory   string  `json:"factory"`
	Day       int     `json:"day"`
	Quantity  float64 `json:"quantity"`
}

// ShipmentLine is the quantity of a material sent over a lane on a day
type ShipmentLine struct {
	Material    string  `json:"material"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Day         int     `json:"day"`
	Quantity    float64 `json:"quantity"`
}

// ReserveLine is equipment drawn from the reserve. Day 0 is the seed that
// stocks a hospital before the first modeled day.
type ReserveLine struct {
	Equipment   string  `json:"equipment"`
	Destination string  `json:"destination"`
	Day         int     `json:"day"`
	Quantity    float64 `json:"quantity"`
}

// DuplicateLane reports a shipping row discarded in favour of a cheaper one
type DuplicateLane struct {
	Lane          string `json:"lane"`
	KeptCost      string `json:"kept_cost"`
	DiscardedCost string `json:"discarded_cost"`
}
