package roots

import (
	"errors"

	"go.uber.org/zap"
)

// Solve finds a root of f inside [lower, upper] with method m.
//
// The bounds may be given in either order. The bracket is checked once,
// before the first step; after that each step keeps a sign change between
// the bounds. Iteration stops as soon as |f(estimate)| <= cfg.Tol, or fails
// with a *ConvergenceError after cfg.MaxIter steps. On that failure the
// returned Result still carries the last estimate with Converged == false.
func Solve(m Method, lower, upper float64, f Func, cfg Config) (Result, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return Result{Method: m}, err
	}

	iv := Interval{Lower: lower, Upper: upper}.Normalize()
	if err := CheckBracket(f, iv); err != nil {
		cfg.Logger.Debug("bracket check failed", zap.Stringer("method", m), zap.Error(err))
		return Result{Method: m, Interval: iv}, err
	}

	res := Result{Method: m, Interval: iv}
	for n := 0; n < cfg.MaxIter; {
		step, err := Step(m, iv, f)
		if err != nil {
			var de *DegenerateIntervalError
			if errors.As(err, &de) {
				de.Iteration = n + 1
			}
			cfg.Logger.Debug("step failed", zap.Stringer("method", m), zap.Int("iteration", n+1), zap.Error(err))
			return res, err
		}
		n++

		iv = step.Interval
		res.Root = step.Estimate
		res.Residual = step.Residual
		res.Iterations = n
		res.Interval = iv

		if cfg.Observer != nil {
			cfg.Observer.OnStep(IterationState{
				Iteration: n,
				Interval:  iv,
				Estimate:  step.Estimate,
				Residual:  step.Residual,
			})
		}
		cfg.Logger.Debug("iteration",
			zap.Stringer("method", m),
			zap.Int("n", n),
			zap.Float64("lower", iv.Lower),
			zap.Float64("upper", iv.Upper),
			zap.Float64("estimate", step.Estimate),
			zap.Float64("residual", step.Residual),
		)

		if step.Residual <= cfg.Tol {
			res.Converged = true
			cfg.Logger.Debug("converged", zap.Stringer("method", m), zap.Int("iterations", n), zap.Float64("root", res.Root))
			return res, nil
		}
	}

	return res, &ConvergenceError{
		Method:     m,
		Iterations: res.Iterations,
		Estimate:   res.Root,
		Residual:   res.Residual,
	}
}

// Bisect solves with the bisection method and default settings.
func Bisect(lower, upper float64, f Func) (Result, error) {
	return Solve(Bisection, lower, upper, f, DefaultConfig())
}

// Regfal solves with regula falsi and default settings.
func Regfal(lower, upper float64, f Func) (Result, error) {
	return Solve(RegulaFalsi, lower, upper, f, DefaultConfig())
}

// Fzero solves with the shifter method and default settings.
func Fzero(lower, upper float64, f Func) (Result, error) {
	return Solve(Shifter, lower, upper, f, DefaultConfig())
}
