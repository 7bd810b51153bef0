package roots_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bracket/internal/roots"
)

// counted wraps f and counts evaluations.
func counted(f roots.Func) (roots.Func, *int) {
	n := 0
	return func(x float64) float64 {
		n++
		return f(x)
	}, &n
}

func colebrook(x float64) float64 {
	return 1.0/math.Sqrt(x) + 2.0*math.Log10(0.024651/3.7+2.51/(9655526.5*math.Sqrt(x)))
}

var _ = Describe("Solve", func() {
	sqrt2 := func(x float64) float64 { return x*x - 2 }

	Describe("bisection", func() {
		It("finds sqrt(2) on [0, 2] within 30 iterations", func() {
			res, err := roots.Solve(roots.Bisection, 0, 2, sqrt2, roots.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(res.Root).To(BeNumerically("~", math.Sqrt2, 1e-6))
			Expect(res.Iterations).To(BeNumerically("<=", 30))
			Expect(res.Residual).To(BeNumerically("<=", roots.DefaultTol))
		})

		It("halves the bracket every step", func() {
			trace := &roots.Trace{}
			cfg := roots.DefaultConfig()
			cfg.Observer = trace
			_, err := roots.Solve(roots.Bisection, 0, 2, sqrt2, cfg)
			Expect(err).NotTo(HaveOccurred())

			prev := 2.0
			for _, s := range trace.States {
				Expect(s.Interval.Width()).To(BeNumerically("~", prev/2, 1e-15))
				prev = s.Interval.Width()
			}
		})
	})

	Describe("regula falsi", func() {
		It("is exact in one iteration for a linear function", func() {
			res, err := roots.Solve(roots.RegulaFalsi, 0, 5, func(x float64) float64 { return x - 1 }, roots.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Iterations).To(Equal(1))
			Expect(res.Root).To(BeNumerically("~", 1, 1e-12))
		})
	})

	DescribeTable("cos(x) on [1, 2] converges to pi/2",
		func(m roots.Method) {
			res, err := roots.Solve(m, 1, 2, math.Cos, roots.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Method).To(Equal(m))
			Expect(math.Abs(math.Cos(res.Root))).To(BeNumerically("<=", 1e-6))
			Expect(res.Root).To(BeNumerically("~", math.Pi/2, 1e-5))
		},
		Entry("bisection", roots.Bisection),
		Entry("regula falsi", roots.RegulaFalsi),
		Entry("shifter", roots.Shifter),
	)

	Describe("bracket validation", func() {
		It("rejects x^2+1 on [1, 2] after evaluating only the bounds", func() {
			f, calls := counted(func(x float64) float64 { return x*x + 1 })
			for _, m := range roots.Methods() {
				*calls = 0
				_, err := roots.Solve(m, 1, 2, f, roots.DefaultConfig())
				Expect(errors.Is(err, roots.ErrNoBracket)).To(BeTrue())

				var nb *roots.NoBracketError
				Expect(errors.As(err, &nb)).To(BeTrue())
				Expect(nb.FLower).To(Equal(2.0))
				Expect(nb.FUpper).To(Equal(5.0))
				Expect(*calls).To(Equal(2))
			}
		})

		It("rejects a root sitting exactly on a bound", func() {
			_, err := roots.Solve(roots.Bisection, 1, 3, func(x float64) float64 { return x - 1 }, roots.DefaultConfig())
			Expect(err).To(MatchError(roots.ErrNoBracket))
		})

		It("rejects NaN at a bound", func() {
			_, err := roots.Solve(roots.Shifter, -1, 1, func(x float64) float64 { return math.Log(x) }, roots.DefaultConfig())
			Expect(err).To(MatchError(roots.ErrNoBracket))
		})

		It("accepts reversed bounds", func() {
			res, err := roots.Solve(roots.Bisection, 2, 0, sqrt2, roots.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Root).To(BeNumerically("~", math.Sqrt2, 1e-6))
		})
	})

	Describe("iteration cap", func() {
		It("reports non-convergence after exactly one iteration", func() {
			cfg := roots.DefaultConfig()
			cfg.MaxIter = 1
			for _, m := range roots.Methods() {
				res, err := roots.Solve(m, 0, 2, sqrt2, cfg)
				Expect(err).To(MatchError(roots.ErrNotConverged))

				var ce *roots.ConvergenceError
				Expect(errors.As(err, &ce)).To(BeTrue())
				Expect(ce.Iterations).To(Equal(1))
				Expect(ce.Method).To(Equal(m))
				Expect(res.Converged).To(BeFalse())
				Expect(res.Iterations).To(Equal(1))
				Expect(res.Root).To(Equal(ce.Estimate))
			}
		})
	})

	Describe("configuration", func() {
		It("uses defaults for zero values", func() {
			res, err := roots.Solve(roots.Bisection, 0, 2, sqrt2, roots.Config{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Residual).To(BeNumerically("<=", roots.DefaultTol))
		})

		It("honours a tighter tolerance", func() {
			cfg := roots.Config{Tol: 1e-12}
			res, err := roots.Solve(roots.Shifter, 0, 2, sqrt2, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Residual).To(BeNumerically("<=", 1e-12))
		})

		It("treats a zero tolerance as the default", func() {
			res, err := roots.Solve(roots.Bisection, 0, 3, func(x float64) float64 { return x - 1 }, roots.Config{Tol: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Residual).To(BeNumerically(">", 0))
			Expect(res.Residual).To(BeNumerically("<=", roots.DefaultTol))
		})

		It("reaches an exact zero with the smallest positive tolerance", func() {
			cfg := roots.Config{Tol: math.SmallestNonzeroFloat64}
			res, err := roots.Solve(roots.Bisection, 0, 4, func(x float64) float64 { return x - 1 }, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Root).To(Equal(1.0))
			Expect(res.Residual).To(BeZero())
			Expect(res.Iterations).To(Equal(2))
		})

		DescribeTable("rejects invalid settings",
			func(cfg roots.Config) {
				_, err := roots.Solve(roots.Bisection, 0, 2, sqrt2, cfg)
				Expect(err).To(MatchError(roots.ErrInvalidConfig))
			},
			Entry("negative max iter", roots.Config{MaxIter: -1}),
			Entry("negative tolerance", roots.Config{Tol: -1e-6}),
			Entry("NaN tolerance", roots.Config{Tol: math.NaN()}),
		)
	})

	Describe("invariants", func() {
		problems := []struct {
			name         string
			f            roots.Func
			lower, upper float64
		}{
			{"sqrt2", sqrt2, 0, 2},
			{"cosine", math.Cos, 1, 2},
			{"cubic", func(x float64) float64 { return x*x*x - x - 2 }, 1, 2},
			{"colebrook", colebrook, 0.02, 0.07},
			{"exp", func(x float64) float64 { return math.Exp(x) - 10 }, 0, 5},
		}

		for _, p := range problems {
			for _, m := range roots.Methods() {
				p, m := p, m
				It("keeps the bracket for "+p.name+" with "+m.String(), func() {
					trace := &roots.Trace{}
					cfg := roots.DefaultConfig()
					cfg.Observer = trace

					res, err := roots.Solve(m, p.lower, p.upper, p.f, cfg)
					if err != nil {
						Expect(err).To(MatchError(roots.ErrNotConverged))
						Expect(res.Iterations).To(Equal(roots.DefaultMaxIter))
					} else {
						Expect(math.Abs(p.f(res.Root))).To(BeNumerically("<=", roots.DefaultTol))
					}

					Expect(trace.Len()).To(Equal(res.Iterations))
					prevWidth := p.upper - p.lower
					for i, s := range trace.States {
						Expect(s.Iteration).To(Equal(i + 1))
						Expect(s.Interval.Lower).To(BeNumerically("<=", s.Interval.Upper))
						Expect(p.f(s.Interval.Lower) * p.f(s.Interval.Upper)).To(BeNumerically("<=", 0))
						Expect(s.Interval.Width()).To(BeNumerically("<=", prevWidth))
						prevWidth = s.Interval.Width()
					}
				})
			}
		}
	})
})

var _ = Describe("Step", func() {
	It("replaces the upper bound when the root is below the midpoint", func() {
		step, err := roots.Step(roots.Bisection, roots.Interval{Lower: 0, Upper: 4}, func(x float64) float64 { return x - 1 })
		Expect(err).NotTo(HaveOccurred())
		Expect(step.Estimate).To(Equal(2.0))
		Expect(step.Residual).To(Equal(1.0))
		Expect(step.Replaced).To(Equal(roots.UpperBound))
		Expect(step.Interval).To(Equal(roots.Interval{Lower: 0, Upper: 2}))
	})

	It("replaces the lower bound when f(midpoint) is zero", func() {
		step, err := roots.Step(roots.Bisection, roots.Interval{Lower: 0, Upper: 4}, func(x float64) float64 { return x - 2 })
		Expect(err).NotTo(HaveOccurred())
		Expect(step.Residual).To(BeZero())
		Expect(step.Replaced).To(Equal(roots.LowerBound))
		Expect(step.Interval).To(Equal(roots.Interval{Lower: 2, Upper: 4}))
	})

	It("picks the smaller residual candidate in the shifter", func() {
		// bisection lands on the root at 1, interpolation does not
		f := func(x float64) float64 { return (x - 1) * (x + 3) }
		step, err := roots.Step(roots.Shifter, roots.Interval{Lower: 0, Upper: 2}, f)
		Expect(err).NotTo(HaveOccurred())
		Expect(step.Estimate).To(Equal(1.0))
		Expect(step.Residual).To(BeZero())
	})

	DescribeTable("evaluates f at most four times per step",
		func(m roots.Method, want int) {
			f, calls := counted(math.Cos)
			_, err := roots.Step(m, roots.Interval{Lower: 1, Upper: 2}, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(*calls).To(Equal(want))
		},
		Entry("bisection", roots.Bisection, 2),
		Entry("regula falsi", roots.RegulaFalsi, 3),
		Entry("shifter", roots.Shifter, 4),
	)

	DescribeTable("fails on a flat secant",
		func(m roots.Method) {
			iv := roots.Interval{Lower: -1, Upper: 1}
			_, err := roots.Step(m, iv, func(x float64) float64 { return x * x })
			Expect(err).To(MatchError(roots.ErrDegenerateInterval))

			var de *roots.DegenerateIntervalError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Method).To(Equal(m))
			Expect(de.Interval).To(Equal(iv))
		},
		Entry("regula falsi", roots.RegulaFalsi),
		Entry("shifter", roots.Shifter),
	)

	It("surfaces degeneracy from Solve with the iteration number", func() {
		// log(0) = -Inf brackets the root at 1 but makes the secant Inf/Inf
		for _, m := range []roots.Method{roots.RegulaFalsi, roots.Shifter} {
			_, err := roots.Solve(m, 0, 2, math.Log, roots.DefaultConfig())
			var de *roots.DegenerateIntervalError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Iteration).To(Equal(1))
		}

		res, err := roots.Solve(roots.Bisection, 0, 2, math.Log, roots.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Root).To(BeNumerically("~", 1, 1e-5))
	})
})

var _ = Describe("ParseMethod", func() {
	DescribeTable("accepts known names",
		func(name string, want roots.Method) {
			m, err := roots.ParseMethod(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(want))
		},
		Entry(nil, "bisection", roots.Bisection),
		Entry(nil, "Regula-Falsi", roots.RegulaFalsi),
		Entry(nil, "regfal", roots.RegulaFalsi),
		Entry(nil, "fzero", roots.Shifter),
		Entry(nil, " shifter ", roots.Shifter),
	)

	It("round-trips String", func() {
		for _, m := range roots.Methods() {
			parsed, err := roots.ParseMethod(m.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(m))
		}
	})

	It("rejects unknown names", func() {
		_, err := roots.ParseMethod("newton")
		Expect(err).To(MatchError(roots.ErrUnknownMethod))
	})
})
