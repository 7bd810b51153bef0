package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Solution is implemented by systems with a closed-form solution, used to
// report integration error.
type Solution interface {
	Exact(x0 State, t float64) State
}

// Hamiltonian is implemented by conservative systems.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Config describes a run over [T0, T1] split into Steps equal intervals.
type Config struct {
	T0            float64
	T1            float64
	Steps         int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		T0:            0.0,
		T1:            5.0,
		Steps:         255,
		ValidateState: true,
	}
}

// Dt returns the fixed step size.
func (c Config) Dt() float64 {
	return (c.T1 - c.T0) / float64(c.Steps)
}

func (c Config) validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	}
	if !(c.T1 > c.T0) {
		return fmt.Errorf("%w: final time %g must exceed initial time %g", ErrInvalidConfig, c.T1, c.T0)
	}
	return nil
}

type Result struct {
	Times  []float64
	States []State
}

// Component extracts state index i across the run.
func (r *Result) Component(i int) []float64 {
	out := make([]float64, len(r.States))
	for k, s := range r.States {
		if i < len(s) {
			out[k] = s[i]
		}
	}
	return out
}

// Linspace returns n+1 evenly spaced points from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return []float64{a}
	}
	out := make([]float64, n+1)
	h := (b - a) / float64(n)
	for i := range out {
		out[i] = a + float64(i)*h
	}
	out[n] = b
	return out
}
