package roots

import (
	"errors"
	"fmt"
)

// Domain errors for root finding.
var (
	// ErrNoBracket indicates f does not change sign over the initial interval.
	ErrNoBracket = errors.New("roots: no sign change in interval")

	// ErrDegenerateInterval indicates an interpolation step hit a zero denominator.
	ErrDegenerateInterval = errors.New("roots: degenerate interval (f(lower) == f(upper))")

	// ErrNotConverged indicates the iteration cap was reached above tolerance.
	ErrNotConverged = errors.New("roots: method did not converge")

	// ErrInvalidConfig indicates a negative or NaN iteration cap or tolerance.
	ErrInvalidConfig = errors.New("roots: invalid solver configuration")

	// ErrUnknownMethod indicates a method name that ParseMethod does not know.
	ErrUnknownMethod = errors.New("roots: unknown method")
)

// NoBracketError reports the bound values that failed the sign check.
type NoBracketError struct {
	Interval Interval
	FLower   float64
	FUpper   float64
}

func (e *NoBracketError) Error() string {
	return fmt.Sprintf("no root enclosed in [%g, %g]: f(lower)=%g, f(upper)=%g",
		e.Interval.Lower, e.Interval.Upper, e.FLower, e.FUpper)
}

func (e *NoBracketError) Unwrap() error { return ErrNoBracket }

// DegenerateIntervalError reports the step at which interpolation broke down.
type DegenerateIntervalError struct {
	Method    Method
	Iteration int
	Interval  Interval
}

func (e *DegenerateIntervalError) Error() string {
	return fmt.Sprintf("%s: degenerate interval [%g, %g] at iteration %d",
		e.Method, e.Interval.Lower, e.Interval.Upper, e.Iteration)
}

func (e *DegenerateIntervalError) Unwrap() error { return ErrDegenerateInterval }

// ConvergenceError is returned when MaxIter steps did not bring the residual
// under tolerance. Estimate is the last iterate.
type ConvergenceError struct {
	Method     Method
	Iterations int
	Estimate   float64
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s needs additional iterations for convergence: |f(%g)| = %g after %d iterations",
		e.Method, e.Estimate, e.Residual, e.Iterations)
}

func (e *ConvergenceError) Unwrap() error { return ErrNotConverged }
