// Package roots provides bracketing root finders for scalar nonlinear
// equations f(x) = 0.
//
// Three methods share a single iteration driver:
//
//   - [Bisection]: halves the bracket every step
//   - [RegulaFalsi]: false position, the root of the secant through the bounds
//   - [Shifter]: per step, whichever of the two candidates has the smaller residual
//
// # Example
//
//	f := func(x float64) float64 { return x*x - 2 }
//	res, err := roots.Solve(roots.Bisection, 0, 2, f, roots.DefaultConfig())
//	if err != nil {
//	    var ce *roots.ConvergenceError
//	    if errors.As(err, &ce) {
//	        // res.Root holds the best estimate so far
//	    }
//	}
//
// # Thread Safety
//
// Solve keeps all of its state on the stack of the call. Independent calls
// may run concurrently as long as f is reentrant; see [SolveAll].
package roots
