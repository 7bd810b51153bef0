// Package events locates the times at which an integrated trajectory
// crosses a level, refining each crossing with a bracketing root finder on
// a local cubic interpolant of the samples.
package events

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/bracket/internal/dynamo"
	"github.com/san-kum/bracket/internal/interp"
	"github.com/san-kum/bracket/internal/roots"
)

// Event is one crossing of Level by state component Component.
type Event struct {
	Component  int
	Level      float64
	Time       float64
	Rising     bool
	Iterations int
	// Converged is false when the root finder ran out of iterations; Time
	// is then its best estimate.
	Converged bool
}

type Finder struct {
	Method roots.Method
	Config roots.Config
}

func NewFinder(m roots.Method) *Finder {
	return &Finder{Method: m, Config: roots.DefaultConfig()}
}

// Find scans res for sign changes of x[component]-level between samples and
// solves each one. Samples that sit exactly on the level are reported as
// crossings without iterating.
func (fd *Finder) Find(res *dynamo.Result, component int, level float64) ([]Event, error) {
	if len(res.Times) != len(res.States) {
		return nil, fmt.Errorf("events: %d times but %d states", len(res.Times), len(res.States))
	}
	ys := res.Component(component)

	var out []Event
	for i := 0; i+1 < len(ys); i++ {
		g0, g1 := ys[i]-level, ys[i+1]-level
		switch {
		case g0 == 0:
			if i == 0 || (ys[i-1]-level)*g1 < 0 {
				out = append(out, Event{Component: component, Level: level, Time: res.Times[i], Rising: g1 > 0, Converged: true})
			}
			continue
		case g0*g1 >= 0:
			continue
		}

		ev, err := fd.refine(res.Times, ys, i, level)
		if err != nil {
			return out, err
		}
		ev.Component = component
		out = append(out, ev)
	}

	if n := len(ys); n >= 2 && ys[n-1] == level && ys[n-2] != level {
		out = append(out, Event{Component: component, Level: level, Time: res.Times[n-1], Rising: ys[n-1] > ys[n-2], Converged: true})
	}
	return out, nil
}

// refine fits a cubic through up to four samples around [t_i, t_i+1] and
// solves it on that sub-interval. The cell ends return the sampled values,
// so the bracket holds even where the cubic rounds across the level. A cell
// the cubic cannot resolve is solved on the chord between its samples.
func (fd *Finder) refine(ts, ys []float64, i int, level float64) (Event, error) {
	t0, t1 := ts[i], ts[i+1]
	g0, g1 := ys[i]-level, ys[i+1]-level

	lo := max(0, i-1)
	hi := min(len(ts), i+3)
	if hi-lo > 4 {
		hi = lo + 4
	}

	var res roots.Result
	p, err := interp.Lagrange(ts[lo:hi], ys[lo:hi])
	if err == nil {
		g := func(t float64) float64 {
			switch t {
			case t0:
				return g0
			case t1:
				return g1
			}
			return p.Eval(t) - level
		}
		res, err = roots.Solve(fd.Method, t0, t1, g, fd.Config)
	}
	if err != nil && !errors.Is(err, roots.ErrNotConverged) {
		if log := fd.Config.Logger; log != nil {
			log.Debug("cubic refinement failed, using chord", zap.Float64("t", t0), zap.Error(err))
		}

		chord := func(t float64) float64 { return (g0*(t1-t) + g1*(t-t0)) / (t1 - t0) }
		res, err = roots.Solve(roots.Bisection, t0, t1, chord, fd.Config)
	}
	if err != nil && !errors.Is(err, roots.ErrNotConverged) {
		return Event{}, fmt.Errorf("events: crossing near t=%g: %w", t0, err)
	}

	return Event{
		Level:      level,
		Time:       res.Root,
		Rising:     g1 > g0,
		Iterations: res.Iterations,
		Converged:  res.Converged,
	}, nil
}
