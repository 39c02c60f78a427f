package entities

import "errors"

var (
	// ErrInvalidTables is returned when input tables fail validation
	ErrInvalidTables = errors.New("invalid input tables")
	// ErrRaggedDemand is returned when hospital demand vectors differ in length
	ErrRaggedDemand = errors.New("demand rows have differing lengths")
	// ErrNameCollision is returned when a name is used by both a factory and a hospital
	ErrNameCollision = errors.New("location name used by both a factory and a hospital")
	// ErrUnknownLocation is returned when an edge touches a location that is not declared
	ErrUnknownLocation = errors.New("unknown location")
	// ErrReserveDestination is returned when an edge ships into the reserve
	ErrReserveDestination = errors.New("reserve cannot be a shipping destination")
	// ErrSentinelTooSmall is returned when reserve sentinels do not exceed total demand
	ErrSentinelTooSmall = errors.New("reserve sentinel does not exceed total demand")
	// ErrDuplicateKey is returned when two generators emit the same key
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUndeclared is returned when a coefficient references an undeclared variable or row
	ErrUndeclared = errors.New("undeclared variable or row")
	// ErrSolveFailed is returned when the solver does not report an optimal assignment
	ErrSolveFailed = errors.New("solve failed")
)
