package shared

import (
	"fmt"
	"strings"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

// ValidationError reports input the domain does not recognise: unknown body
// identifiers, malformed import rows, invalid travel plans.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewUnknownBodyError reports a body identifier missing from the catalog
func NewUnknownBodyError(field, id string) *ValidationError {
	return NewValidationError(field, fmt.Sprintf("unknown body %q", id))
}

// Graph state errors

// StateError reports a graph mutation that was rejected. The graph is left
// untouched whenever one is returned.
type StateError struct {
	*DomainError
	Body string
}

func NewStateError(body, message string) *StateError {
	return &StateError{DomainError: &DomainError{Message: message}, Body: body}
}

func NewDuplicateBodyError(body string) *StateError {
	return NewStateError(body, fmt.Sprintf("body %s is already in the graph", body))
}

func NewMissingBodyError(body string) *StateError {
	return NewStateError(body, fmt.Sprintf("body %s is not in the graph", body))
}

func NewIsolatedBodyError(body string) *StateError {
	return NewStateError(body, fmt.Sprintf("body %s has no catalog distance to any body in the graph", body))
}

// Path errors

// PathReason classifies why a route could not be computed
type PathReason string

const (
	PathReasonNoPath      PathReason = "NO_PATH"
	PathReasonUnknownNode PathReason = "UNKNOWN_NODE"
)

// PathError reports that no route exists between two bodies. Leg is set when
// the failure happened on one half of a stopover route (1 or 2).
type PathError struct {
	*DomainError
	Reason PathReason
	From   string
	To     string
	Leg    int
}

func NewNoPathError(from, to string) *PathError {
	return &PathError{
		DomainError: &DomainError{Message: fmt.Sprintf("no path between %s and %s", from, to)},
		Reason:      PathReasonNoPath,
		From:        from,
		To:          to,
	}
}

func NewUnknownNodeError(from, to, missing string) *PathError {
	return &PathError{
		DomainError: &DomainError{Message: fmt.Sprintf("cannot route %s to %s: %s is not in the graph", from, to, missing)},
		Reason:      PathReasonUnknownNode,
		From:        from,
		To:          to,
	}
}

// Travel errors

// InsufficientFuelError reports that the fuel balance went negative mid-walk
type InsufficientFuelError struct {
	*DomainError
	From    string
	To      string
	Balance float64
}

func NewInsufficientFuelError(from, to string, balance float64) *InsufficientFuelError {
	return &InsufficientFuelError{
		DomainError: &DomainError{Message: fmt.Sprintf("insufficient fuel after %s → %s: balance %g", from, to, balance)},
		From:        from,
		To:          to,
		Balance:     balance,
	}
}

// RuleBlockError reports that a calendar rule forbids the trip
type RuleBlockError struct {
	*DomainError
	Reasons []string
}

func NewRuleBlockError(reasons ...string) *RuleBlockError {
	return &RuleBlockError{
		DomainError: &DomainError{Message: "trip blocked: " + strings.Join(reasons, "; ")},
		Reasons:     reasons,
	}
}

// ConfirmationDeclinedError reports that the caller answered no to a
// required confirmation
type ConfirmationDeclinedError struct {
	*DomainError
}

func NewConfirmationDeclinedError(message string) *ConfirmationDeclinedError {
	return &ConfirmationDeclinedError{DomainError: &DomainError{Message: message}}
}
