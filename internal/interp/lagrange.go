// Package interp builds interpolating polynomials through sampled data.
package interp

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrLengthMismatch = errors.New("interp: xs and ys differ in length")
	ErrEmpty          = errors.New("interp: no data points")
	ErrDuplicateX     = errors.New("interp: duplicate abscissa")
)

// Polynomial is the Lagrange form of the unique polynomial of degree
// len(xs)-1 through the nodes (xs[i], ys[i]).
type Polynomial struct {
	xs      []float64
	ys      []float64
	weights []float64
}

// Lagrange builds the interpolant. The inputs are copied.
func Lagrange(xs, ys []float64) (Polynomial, error) {
	if len(xs) != len(ys) {
		return Polynomial{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return Polynomial{}, ErrEmpty
	}

	p := Polynomial{
		xs:      append([]float64(nil), xs...),
		ys:      append([]float64(nil), ys...),
		weights: make([]float64, len(xs)),
	}
	for i := range p.xs {
		den := 1.0
		for j := range p.xs {
			if i == j {
				continue
			}
			d := p.xs[i] - p.xs[j]
			if d == 0 {
				return Polynomial{}, fmt.Errorf("%w: x=%g", ErrDuplicateX, p.xs[i])
			}
			den *= d
		}
		p.weights[i] = p.ys[i] / den
	}
	return p, nil
}

func (p Polynomial) Degree() int { return len(p.xs) - 1 }

// Eval returns the interpolant at x.
func (p Polynomial) Eval(x float64) float64 {
	sum := 0.0
	for i := range p.xs {
		term := p.weights[i]
		for j := range p.xs {
			if i != j {
				term *= x - p.xs[j]
			}
		}
		sum += term
	}
	return sum
}

// Func adapts the polynomial to a plain scalar function.
func (p Polynomial) Func() func(float64) float64 {
	return p.Eval
}

// Residuals returns |ys[i] - p(xs[i])| for a dataset.
func (p Polynomial) Residuals(xs, ys []float64) []float64 {
	n := min(len(xs), len(ys))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Abs(ys[i] - p.Eval(xs[i]))
	}
	return out
}
