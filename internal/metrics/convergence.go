// Package metrics summarizes runs while they happen. Iteration metrics
// observe a root finder, trajectory metrics observe a simulator.
package metrics

import (
	"math"

	"github.com/san-kum/bracket/internal/roots"
)

type Metric interface {
	Name() string
	Value() float64
	Reset()
}

// WidthRatio is the geometric mean of successive bracket width ratios.
// Bisection gives exactly 0.5.
type WidthRatio struct {
	name    string
	prev    float64
	logSum  float64
	samples int
}

func NewWidthRatio() *WidthRatio {
	return &WidthRatio{name: "width_ratio"}
}

func (w *WidthRatio) Name() string { return w.name }

func (w *WidthRatio) OnStep(s roots.IterationState) {
	width := s.Interval.Width()
	if w.prev > 0 && width > 0 {
		w.logSum += math.Log(width / w.prev)
		w.samples++
	}
	w.prev = width
}

func (w *WidthRatio) Value() float64 {
	if w.samples == 0 {
		return math.NaN()
	}
	return math.Exp(w.logSum / float64(w.samples))
}

func (w *WidthRatio) Reset() {
	w.prev = 0
	w.logSum = 0
	w.samples = 0
}

// ResidualRate is the geometric mean of successive residual ratios, a linear
// convergence rate. Zero residuals end the sequence.
type ResidualRate struct {
	name    string
	prev    float64
	logSum  float64
	samples int
}

func NewResidualRate() *ResidualRate {
	return &ResidualRate{name: "residual_rate"}
}

func (r *ResidualRate) Name() string { return r.name }

func (r *ResidualRate) OnStep(s roots.IterationState) {
	res := s.Residual
	if r.prev > 0 && res > 0 && !math.IsInf(r.prev, 0) && !math.IsInf(res, 0) {
		r.logSum += math.Log(res / r.prev)
		r.samples++
	}
	r.prev = res
}

func (r *ResidualRate) Value() float64 {
	if r.samples == 0 {
		return math.NaN()
	}
	return math.Exp(r.logSum / float64(r.samples))
}

func (r *ResidualRate) Reset() {
	r.prev = 0
	r.logSum = 0
	r.samples = 0
}

// Observers fans one iteration out to several observers.
type Observers []roots.Observer

func (o Observers) OnStep(s roots.IterationState) {
	for _, obs := range o {
		obs.OnStep(s)
	}
}
