package config

// Confirmation policies for rules that ask before travelling
const (
	ConfirmPrompt  = "prompt"
	ConfirmAccept  = "accept"
	ConfirmDecline = "decline"
)

// TravelConfig holds simulator settings
type TravelConfig struct {
	// Fuel added the first time a trip touches a station
	RefuelAmount float64 `mapstructure:"refuel_amount" validate:"gt=0"`

	// Fuel used when neither a flag nor a user default provides one
	DefaultFuel float64 `mapstructure:"default_fuel" validate:"gte=0"`

	// How the CLI answers confirmations: prompt asks on a terminal and
	// declines otherwise
	Confirm string `mapstructure:"confirm" validate:"required,oneof=prompt accept decline"`
}
