package roots

import (
	"fmt"
	"math"
)

// CheckBracket fails with a *NoBracketError unless f changes sign strictly
// over iv. f is evaluated once at each bound.
func CheckBracket(f Func, iv Interval) error {
	fl := f(iv.Lower)
	fu := f(iv.Upper)
	// a NaN product must fail too, hence the negated comparison
	if !(fl*fu < 0) {
		return &NoBracketError{Interval: iv, FLower: fl, FUpper: fu}
	}
	return nil
}

// Step advances iv by one iteration of m. It does not look at tolerances.
func Step(m Method, iv Interval, f Func) (StepResult, error) {
	var (
		res StepResult
		err error
	)
	switch m {
	case Bisection:
		res = bisect(iv, f)
	case RegulaFalsi:
		res, err = regulaFalsi(iv, f)
	case Shifter:
		res, err = shift(iv, f)
	default:
		return StepResult{}, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
	if err != nil {
		return StepResult{}, &DegenerateIntervalError{Method: m, Interval: iv}
	}
	return res, nil
}

func bisect(iv Interval, f Func) StepResult {
	xm := iv.Midpoint()
	return update(iv, f(iv.Lower), xm, f(xm))
}

func regulaFalsi(iv Interval, f Func) (StepResult, error) {
	xf, fl, ok := interpolate(iv, f)
	if !ok {
		return StepResult{}, ErrDegenerateInterval
	}
	return update(iv, fl, xf, f(xf)), nil
}

func shift(iv Interval, f Func) (StepResult, error) {
	xf, fl, ok := interpolate(iv, f)
	if !ok {
		return StepResult{}, ErrDegenerateInterval
	}
	xb := iv.Midpoint()

	xn, fn := xf, f(xf)
	if fb := f(xb); math.Abs(fb) < math.Abs(fn) {
		xn, fn = xb, fb
	}
	return update(iv, fl, xn, fn), nil
}

// interpolate returns the root of the secant through both bounds, along
// with f(lower).
func interpolate(iv Interval, f Func) (float64, float64, bool) {
	fl := f(iv.Lower)
	fu := f(iv.Upper)
	den := fu - fl
	if den == 0 {
		return math.NaN(), fl, false
	}
	x := (iv.Lower*fu - iv.Upper*fl) / den
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x, fl, false
	}
	return x, fl, true
}

// update applies the sign rule: the root lies in [lower, x] when f(lower)
// and f(x) differ in sign, otherwise in [x, upper]. fx == 0 replaces lower.
func update(iv Interval, fl, x, fx float64) StepResult {
	res := StepResult{Estimate: x, Residual: math.Abs(fx)}
	if fl*fx < 0 {
		res.Interval = Interval{Lower: iv.Lower, Upper: x}
		res.Replaced = UpperBound
	} else {
		res.Interval = Interval{Lower: x, Upper: iv.Upper}
		res.Replaced = LowerBound
	}
	return res
}
