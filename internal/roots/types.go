package roots

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultMaxIter = 100
	DefaultTol     = 1e-6
)

// Func is the scalar function whose root is sought. Extra parameters are
// captured by the closure.
type Func func(x float64) float64

type Method int

const (
	Bisection Method = iota
	RegulaFalsi
	Shifter
)

func (m Method) String() string {
	switch m {
	case Bisection:
		return "bisection"
	case RegulaFalsi:
		return "regula-falsi"
	case Shifter:
		return "shifter"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Methods lists every supported method in a stable order.
func Methods() []Method {
	return []Method{Bisection, RegulaFalsi, Shifter}
}

func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bisection", "bisect":
		return Bisection, nil
	case "regula-falsi", "regula_falsi", "regfal", "false-position":
		return RegulaFalsi, nil
	case "shifter", "shift", "fzero":
		return Shifter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Interval is a closed interval [Lower, Upper]. Steps never mutate an
// Interval, they return a new one.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Normalize orders the bounds so that Lower <= Upper.
func (iv Interval) Normalize() Interval {
	if iv.Lower > iv.Upper {
		return Interval{Lower: iv.Upper, Upper: iv.Lower}
	}
	return iv
}

func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

func (iv Interval) Midpoint() float64 {
	return 0.5 * (iv.Lower + iv.Upper)
}

func (iv Interval) Contains(x float64) bool {
	return iv.Lower <= x && x <= iv.Upper
}

// Bound names the end of the interval a step replaced.
type Bound int

const (
	LowerBound Bound = iota
	UpperBound
)

func (b Bound) String() string {
	if b == UpperBound {
		return "upper"
	}
	return "lower"
}

type StepResult struct {
	Interval Interval
	Estimate float64
	Residual float64
	Replaced Bound
}

// IterationState is the driver's view after one step.
type IterationState struct {
	Iteration int      `json:"iteration"`
	Interval  Interval `json:"interval"`
	Estimate  float64  `json:"estimate"`
	Residual  float64  `json:"residual"`
}

type Observer interface {
	OnStep(s IterationState)
}

// Trace records every iteration it observes. A Trace belongs to one call.
type Trace struct {
	States []IterationState
}

func (t *Trace) OnStep(s IterationState) {
	t.States = append(t.States, s)
}

func (t *Trace) Len() int { return len(t.States) }

// Residuals returns the residual history in iteration order.
func (t *Trace) Residuals() []float64 {
	out := make([]float64, len(t.States))
	for i, s := range t.States {
		out[i] = s.Residual
	}
	return out
}

// Widths returns the bracket width history in iteration order.
func (t *Trace) Widths() []float64 {
	out := make([]float64, len(t.States))
	for i, s := range t.States {
		out[i] = s.Interval.Width()
	}
	return out
}

// Config bounds an iteration. A zero MaxIter or Tol selects DefaultMaxIter
// or DefaultTol, so Tol cannot be 0; use math.SmallestNonzeroFloat64 to ask
// for an exact zero residual.
type Config struct {
	MaxIter  int
	Tol      float64
	Observer Observer
	Logger   *zap.Logger
}

func DefaultConfig() Config {
	return Config{
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
	}
}

// withDefaults fills zero values and rejects negative or NaN settings.
func (c Config) withDefaults() (Config, error) {
	if c.MaxIter < 0 {
		return c, fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfig, c.MaxIter)
	}
	if c.Tol < 0 || math.IsNaN(c.Tol) {
		return c, fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, c.Tol)
	}
	if c.MaxIter == 0 {
		c.MaxIter = DefaultMaxIter
	}
	if c.Tol == 0 {
		c.Tol = DefaultTol
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c, nil
}

type Result struct {
	Method     Method   `json:"method"`
	Root       float64  `json:"root"`
	Iterations int      `json:"iterations"`
	Residual   float64  `json:"residual"`
	Interval   Interval `json:"interval"`
	Converged  bool     `json:"converged"`
}
