package model

import "fmt"

// ConfigurationError reports required input missing for a building.
// Fatal for the affected building; the id travels with the error.
type ConfigurationError struct {
	BuildingID int
	Msg        string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("building %d: %s", e.BuildingID, e.Msg)
}

// LookupError reports a catalogue or action-table miss.
type LookupError struct {
	Kind string // "generation_system", "energy_carrier", "action"
	ID   int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// InvariantViolation reports an upstream data contract breach such as a
// series length mismatch or a negative capacity. Always fatal.
type InvariantViolation struct {
	What string
	Want int
	Got  int
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s: want length %d, got %d", e.What, e.Want, e.Got)
}
