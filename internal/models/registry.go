package models

import (
	"fmt"

	"github.com/san-kum/bracket/internal/dynamo"
)

// Get builds a model by name. rate is the decay constant for "decay" and
// the angular frequency for "oscillator".
func Get(name string, rate float64) (dynamo.System, error) {
	switch name {
	case "decay":
		return NewDecay(rate), nil
	case "oscillator":
		return NewOscillator(rate), nil
	}
	return nil, fmt.Errorf("unknown model: %s (available: decay, oscillator)", name)
}
