package models

import (
	"math"

	"github.com/san-kum/bracket/internal/dynamo"
)

// Oscillator is the undamped harmonic oscillator x'' = -w^2 x with state
// (x, v). Its position crosses zero periodically.
type Oscillator struct {
	Omega float64
}

func NewOscillator(omega float64) *Oscillator {
	return &Oscillator{Omega: omega}
}

func (o *Oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -o.Omega * o.Omega * x[0]}
}

func (o *Oscillator) StateDim() int { return 2 }

func (o *Oscillator) Exact(x0 dynamo.State, t float64) dynamo.State {
	w := o.Omega
	c, s := math.Cos(w*t), math.Sin(w*t)
	return dynamo.State{
		x0[0]*c + x0[1]/w*s,
		-x0[0]*w*s + x0[1]*c,
	}
}

// Energy is the mechanical energy per unit mass, (v^2 + w^2 x^2)/2.
func (o *Oscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[1]*x[1] + o.Omega*o.Omega*x[0]*x[0])
}
