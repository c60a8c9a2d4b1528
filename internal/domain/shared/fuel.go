package shared

import "fmt"

// Fuel represents an immutable fuel balance. Unlike a tank it has no capacity
// and may go negative, which is how a stranded trip is detected.
type Fuel struct {
	Units float64
}

// NewFuel creates a starting fuel balance with validation
func NewFuel(units float64) (Fuel, error) {
	if units < 0 {
		return Fuel{}, NewValidationError("fuel", "initial fuel cannot be negative")
	}
	return Fuel{Units: units}, nil
}

// Adjust returns new Fuel shifted by a signed delta
func (f Fuel) Adjust(delta float64) Fuel {
	return Fuel{Units: f.Units + delta}
}

// Refuel returns new Fuel with amount added
func (f Fuel) Refuel(amount float64) Fuel {
	return Fuel{Units: f.Units + amount}
}

// Consume returns new Fuel with the travelled distance burned
func (f Fuel) Consume(distance float64) Fuel {
	return Fuel{Units: f.Units - distance}
}

// Exhausted reports whether the balance went below zero
func (f Fuel) Exhausted() bool {
	return f.Units < 0
}

func (f Fuel) String() string {
	return fmt.Sprintf("Fuel(%g)", f.Units)
}
