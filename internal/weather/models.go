package weather

import (
	"encoding/json"
	"fmt"
)

// UnitSystem selects the temperature convention requested from the provider.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// ParseUnitSystem accepts "metric" or "imperial".
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case Metric, Imperial:
		return UnitSystem(s), nil
	default:
		return "", fmt.Errorf("invalid unit system %q (allowed: metric, imperial)", s)
	}
}

// Symbol returns the temperature unit suffix shown in formatted lines.
func (u UnitSystem) Symbol() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

// Query describes a single current-weather lookup.
type Query struct {
	City     string
	Units    UnitSystem
	Language string
}

// Observation is the subset of a provider response that gets published.
// Temperature keeps the number exactly as the provider wrote it, so whole
// readings stay whole ("15") and fractional ones keep their digits.
type Observation struct {
	CityName    string
	Code        int
	Description string
	Temperature json.Number
}
