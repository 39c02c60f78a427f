package events

import "time"

const (
	TopologyBuiltEvent  = "topology.built"
	ModelAssembledEvent = "model.assembled"
	ModelExportedEvent  = "model.exported"
	SolveCompletedEvent = "solve.completed"
	SolveFailedEvent    = "solve.failed"
	PlanningFailedEvent = "planning.failed"
)

// PlanningEventTypes lists every event a planning run can emit
var PlanningEventTypes = []string{
	TopologyBuiltEvent,
	ModelAssembledEvent,
	ModelExportedEvent,
	SolveCompletedEvent,
	SolveFailedEvent,
	PlanningFailedEvent,
}

type TopologyBuilt struct {
	Locations  int `json:"locations"`
	Edges      int `json:"edges"`
	Materials  int `json:"materials"`
	Horizon    int `json:"horizon"`
	Duplicates int `json:"duplicates"`
}

type ModelAssembled struct {
	Variables    int `json:"variables"`
	UpperBounds  int `json:"upper_bounds"`
	Equalities   int `json:"equalities"`
	Coefficients int `json:"coefficients"`
	CostTerms    int `json:"cost_terms"`
}

type ModelExported struct {
	Path string `json:"path"`
}

type SolveCompleted struct {
	Status       string        `json:"status"`
	Objective    float64       `json:"objective"`
	RunTime      time.Duration `json:"run_time"`
	ReserveUnits float64       `json:"reserve_units"`
	Violations   int           `json:"violations"`
}

type SolveFailed struct {
	Status     string `json:"status"`
	Diagnostic string `json:"diagnostic"`
}

type PlanningFailed struct {
	Stage string `json:"stage"`
	Error string `json:"error"`
}

func NewTopologyBuiltEvent(runID string, data TopologyBuilt) Event {
	return NewEvent(TopologyBuiltEvent, runID, data)
}

func NewModelAssembledEvent(runID string, data ModelAssembled) Event {
	return NewEvent(ModelAssembledEvent, runID, data)
}

func NewModelExportedEvent(runID, path string) Event {
	return NewEvent(ModelExportedEvent, runID, ModelExported{Path: path})
}

func NewSolveCompletedEvent(runID string, data SolveCompleted) Event {
	return NewEvent(SolveCompletedEvent, runID, data)
}

func NewSolveFailedEvent(runID, status, diagnostic string) Event {
	return NewEvent(SolveFailedEvent, runID, SolveFailed{Status: status, Diagnostic: diagnostic})
}

func NewPlanningFailedEvent(runID, stage string, err error) Event {
	return NewEvent(PlanningFailedEvent, runID, PlanningFailed{Stage: stage, Error: err.Error()})
}
