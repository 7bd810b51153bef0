package models

import (
	"math"

	"github.com/san-kum/bracket/internal/dynamo"
)

// Decay is first-order exponential decay dy/dt = -k*y.
type Decay struct {
	Rate float64
}

func NewDecay(rate float64) *Decay {
	return &Decay{Rate: rate}
}

func (d *Decay) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{-d.Rate * x[0]}
}

func (d *Decay) StateDim() int { return 1 }

// Exact returns y0*exp(-k*t).
func (d *Decay) Exact(x0 dynamo.State, t float64) dynamo.State {
	return dynamo.State{x0[0] * math.Exp(-d.Rate*t)}
}
