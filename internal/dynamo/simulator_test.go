package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"
)

type testDynamics struct{}

func (d *testDynamics) Derive(x State, t float64) State {
	return State{-x[0]}
}

func (d *testDynamics) StateDim() int { return 1 }

type testIntegrator struct{}

func (i *testIntegrator) Step(dyn System, x State, t float64, dt float64) State {
	dx := dyn.Derive(x, t)
	return State{x[0] + dt*dx[0]}
}

type blowUp struct{}

func (b *blowUp) Step(dyn System, x State, t float64, dt float64) State {
	return State{math.Inf(1)}
}

type countObserver struct{ n int }

func (c *countObserver) OnStep(x State, t float64) { c.n++ }

func TestSimulatorRun(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	obs := &countObserver{}
	sim.AddObserver(obs)

	cfg := Config{T0: 0, T1: 1, Steps: 10}
	result, err := sim.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if result.Times[10] != 1.0 {
		t.Errorf("expected final time 1.0, got %f", result.Times[10])
	}
	if obs.n != 11 {
		t.Errorf("expected 11 observed states, got %d", obs.n)
	}

	final := result.States[len(result.States)-1][0]
	if math.Abs(final-math.Exp(-1.0)) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", math.Exp(-1.0), final)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero steps", Config{T0: 0, T1: 1, Steps: 0}},
		{"negative steps", Config{T0: 0, T1: 1, Steps: -5}},
		{"empty span", Config{T0: 1, T1: 1, Steps: 10}},
		{"reversed span", Config{T0: 2, T1: 1, Steps: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), State{1.0}, tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorDimensionMismatch(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	_, err := sim.Run(context.Background(), State{1, 2}, DefaultConfig())
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	sim := New(&testDynamics{}, &blowUp{})
	result, err := sim.Run(context.Background(), State{1}, DefaultConfig())

	var se *SimulationError
	if !errors.As(err, &se) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if se.Step != 0 {
		t.Errorf("expected failure at step 0, got %d", se.Step)
	}
	if len(result.States) != len(result.Times) {
		t.Errorf("times and states out of sync: %d vs %d", len(result.Times), len(result.States))
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := New(&testDynamics{}, &testIntegrator{})
	result, err := sim.Run(ctx, State{1}, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.States) != 1 {
		t.Errorf("expected only the initial state, got %d", len(result.States))
	}
}

func TestLinspace(t *testing.T) {
	pts := Linspace(0, 5, 255)
	if len(pts) != 256 {
		t.Fatalf("expected 256 points, got %d", len(pts))
	}
	if pts[0] != 0 || pts[255] != 5 {
		t.Errorf("expected endpoints 0 and 5, got %f and %f", pts[0], pts[255])
	}
	for i := 1; i < len(pts); i++ {
		if pts[i] <= pts[i-1] {
			t.Fatalf("not increasing at %d", i)
		}
	}
}
