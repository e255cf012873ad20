package domain

import (
	"errors"
	"fmt"
)

// Closed set of planning failure kinds. Callers match with errors.Is;
// the boundary layer renders the full PlanError text verbatim.
var (
	ErrValidation  = errors.New("invalid input")
	ErrUnknownCity = errors.New("unknown city")
	ErrNoPath      = errors.New("no travel path")
	ErrInfeasible  = errors.New("infeasible schedule")
)

// PlanError is a planning failure carrying structured context alongside a
// human-readable reason. City and Day are set when they apply.
type PlanError struct {
	Kind   error
	City   string
	Day    int
	Reason string
}

func (e *PlanError) Error() string {
	msg := e.Kind.Error()
	if e.City != "" {
		msg += fmt.Sprintf(" %q", e.City)
	}
	if e.Day > 0 {
		msg += fmt.Sprintf(" (day %d)", e.Day)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *PlanError) Unwrap() error { return e.Kind }

// Validationf builds a validation failure from a formatted reason.
func Validationf(format string, args ...any) *PlanError {
	return &PlanError{Kind: ErrValidation, Reason: fmt.Sprintf(format, args...)}
}

// UnknownCityError builds an unknown-city failure for the given name.
func UnknownCityError(city string) *PlanError {
	return &PlanError{Kind: ErrUnknownCity, City: city}
}

// NoPathError builds a no-path failure for a city pair.
func NoPathError(from, to string) *PlanError {
	return &PlanError{Kind: ErrNoPath, Reason: fmt.Sprintf("between %s and %s", from, to)}
}

// Infeasiblef builds an infeasibility failure from a formatted reason.
func Infeasiblef(format string, args ...any) *PlanError {
	return &PlanError{Kind: ErrInfeasible, Reason: fmt.Sprintf(format, args...)}
}

// InfeasibleAt builds an infeasibility failure pinned to a city and day.
func InfeasibleAt(city string, day int, reason string) *PlanError {
	return &PlanError{Kind: ErrInfeasible, City: city, Day: day, Reason: reason}
}
