package shared

import (
	"fmt"
	"strings"
)

// BodyKind distinguishes planets from refueling stations
type BodyKind string

const (
	BodyKindPlanet  BodyKind = "PLANET"
	BodyKindStation BodyKind = "STATION"
)

// StationPrefix marks station identifiers, e.g. "Station-2"
const StationPrefix = "Station-"

// Body represents an immutable node of the route graph
type Body struct {
	ID   string   `json:"id"`
	Kind BodyKind `json:"kind"`
}

// NewBody creates a body, deriving its kind from the naming convention
func NewBody(id string) (Body, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Body{}, NewValidationError("id", "cannot be empty")
	}
	return Body{ID: id, Kind: KindOf(id)}, nil
}

// KindOf derives the body kind from an identifier
func KindOf(id string) BodyKind {
	if strings.HasPrefix(id, StationPrefix) {
		return BodyKindStation
	}
	return BodyKindPlanet
}

// IsStation reports whether the body grants a refuel
func (b Body) IsStation() bool {
	return b.Kind == BodyKindStation
}

func (b Body) String() string {
	return fmt.Sprintf("Body(%s)", b.ID)
}
