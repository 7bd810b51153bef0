package metrics

import (
	"math"

	"github.com/san-kum/bracket/internal/dynamo"
)

// EnergyDrift is the largest relative change of energy from the first
// observed state. It stays 0 for systems that are not Hamiltonian.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	dyn           dynamo.System
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnStep(x dynamo.State, t float64) {
	h, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MaxError is the largest absolute error of state component 0 against a
// closed-form solution started from x0.
type MaxError struct {
	name   string
	exact  dynamo.Solution
	x0     dynamo.State
	maxErr float64
}

func NewMaxError(exact dynamo.Solution, x0 dynamo.State) *MaxError {
	return &MaxError{
		name:  "max_error",
		exact: exact,
		x0:    x0.Clone(),
	}
}

func (m *MaxError) Name() string { return m.name }

func (m *MaxError) OnStep(x dynamo.State, t float64) {
	ref := m.exact.Exact(m.x0, t)
	m.maxErr = math.Max(m.maxErr, math.Abs(x[0]-ref[0]))
}

func (m *MaxError) Value() float64 { return m.maxErr }

func (m *MaxError) Reset() { m.maxErr = 0 }
