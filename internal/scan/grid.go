// Package scan finds brackets by sampling a function on a grid, so that
// every sign change can be handed to a root finder.
package scan

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/bracket/internal/dynamo"
	"github.com/san-kum/bracket/internal/roots"
)

// Grid samples [Lower, Upper] at Points+1 evenly spaced abscissae.
type Grid struct {
	Lower  float64
	Upper  float64
	Points int
}

func NewGrid(lower, upper float64, points int) *Grid {
	iv := roots.Interval{Lower: lower, Upper: upper}.Normalize()
	return &Grid{Lower: iv.Lower, Upper: iv.Upper, Points: points}
}

// Brackets returns every grid cell over which f changes sign, left to right.
// A sample that is exactly zero yields a degenerate cell [x, x]; callers
// get the root for free. Cells touching NaN samples are skipped.
func (g *Grid) Brackets(ctx context.Context, f roots.Func) ([]roots.Interval, error) {
	if g.Points <= 0 {
		return nil, fmt.Errorf("scan: points must be positive, got %d", g.Points)
	}
	if !(g.Upper > g.Lower) {
		return nil, fmt.Errorf("scan: empty interval [%g, %g]", g.Lower, g.Upper)
	}

	xs := dynamo.Linspace(g.Lower, g.Upper, g.Points)
	fs := make([]float64, len(xs))
	for i, x := range xs {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fs[i] = f(x)
	}

	var out []roots.Interval
	for i := 0; i+1 < len(xs); i++ {
		f0, f1 := fs[i], fs[i+1]
		switch {
		case math.IsNaN(f0) || math.IsNaN(f1):
			continue
		case f0 == 0:
			out = append(out, roots.Interval{Lower: xs[i], Upper: xs[i]})
		case f0*f1 < 0:
			out = append(out, roots.Interval{Lower: xs[i], Upper: xs[i+1]})
		}
	}
	if n := len(fs) - 1; fs[n] == 0 {
		out = append(out, roots.Interval{Lower: xs[n], Upper: xs[n]})
	}
	return out, nil
}

// Jobs turns brackets into solver jobs named "<prefix>-<i>". Degenerate
// cells are returned separately as exact roots.
func Jobs(prefix string, brackets []roots.Interval, m roots.Method, f roots.Func, cfg roots.Config) ([]roots.Job, []float64) {
	var (
		jobs  []roots.Job
		exact []float64
	)
	for i, b := range brackets {
		if b.Width() == 0 {
			exact = append(exact, b.Lower)
			continue
		}
		jobs = append(jobs, roots.Job{
			Name:   fmt.Sprintf("%s-%d", prefix, i+1),
			Method: m,
			Lower:  b.Lower,
			Upper:  b.Upper,
			F:      f,
			Config: cfg,
		})
	}
	return jobs, exact
}
