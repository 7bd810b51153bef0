package dynamo

import (
	"context"
	"fmt"
)

// Observer sees every state stored in the Result, starting with x0.
type Observer interface {
	OnStep(x State, t float64)
}

type Simulator struct {
	dyn        System
	integrator Integrator
	observers  []Observer
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 at cfg.T0 to cfg.T1. The grid comes from
// Linspace, so the last time is exactly T1.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system expects %d", ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}

	times := Linspace(cfg.T0, cfg.T1, cfg.Steps)
	result := &Result{
		Times:  times,
		States: make([]State, 0, len(times)),
	}

	x := x0.Clone()
	result.States = append(result.States, x.Clone())
	s.notify(x, cfg.T0)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			result.Times = result.Times[:len(result.States)]
			return result, ctx.Err()
		default:
		}

		t := times[i]
		x = s.integrator.Step(s.dyn, x, t, times[i+1]-t)

		if cfg.ValidateState && !x.IsValid() {
			result.Times = result.Times[:len(result.States)]
			return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}
		result.States = append(result.States, x.Clone())
		s.notify(x, times[i+1])
	}

	return result, nil
}

func (s *Simulator) notify(x State, t float64) {
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}
