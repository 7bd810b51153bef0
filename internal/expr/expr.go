// Package expr compiles textual functions of x, such as "x**2 - 2" or
// "cos(x)", into callables usable by the root finders.
package expr

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// Expr is a compiled expression in the single variable x. Eval is safe for
// concurrent use: each call gets its own parameter map.
type Expr struct {
	src    string
	parsed *govaluate.EvaluableExpression
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		return fn(toFloat(args[0])), nil
	}
}

// scientific matches a number in exponent notation, e.g. 1e-3 or 2.5E+4.
var scientific = regexp.MustCompile(`(\d+\.?\d*|\.\d+)[eE]([+-]?\d+)`)

// expandExponents rewrites exponent notation as plain decimals, which is
// all the govaluate lexer reads. Matches that continue an identifier are
// left alone.
func expandExponents(src string) string {
	var b strings.Builder
	last := 0
	for _, m := range scientific.FindAllStringIndex(src, -1) {
		if m[0] > 0 {
			c := src[m[0]-1]
			if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
				continue
			}
		}
		v, err := strconv.ParseFloat(src[m[0]:m[1]], 64)
		if err != nil {
			continue
		}
		b.WriteString(src[last:m[0]])
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// Compile parses src. Exponentiation is written "**"; numbers may use
// exponent notation such as 1e-3.
func Compile(src string) (*Expr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("expr: empty expression")
	}

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(expandExponents(src), functions)
	if err != nil {
		return nil, fmt.Errorf("expr: parse %q: %w", src, err)
	}

	for _, v := range parsed.Vars() {
		switch v {
		case "x", "pi", "e":
		default:
			return nil, fmt.Errorf("expr: unknown variable %q in %q", v, src)
		}
	}

	return &Expr{src: src, parsed: parsed}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Expr {
	e, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Expr) String() string { return e.src }

func (e *Expr) Eval(x float64) (float64, error) {
	v, err := e.parsed.Evaluate(map[string]interface{}{
		"x":  x,
		"pi": math.Pi,
		"e":  math.E,
	})
	if err != nil {
		return math.NaN(), fmt.Errorf("expr: evaluate %q at x=%g: %w", e.src, x, err)
	}

	switch t := v.(type) {
	case float64:
		return t, nil
	case bool:
		return math.NaN(), fmt.Errorf("expr: %q is a condition, not a number", e.src)
	default:
		return toFloat(t), nil
	}
}

// Func adapts e to a plain scalar function. Evaluation errors become NaN,
// which the bracket check rejects.
func (e *Expr) Func() func(float64) float64 {
	return func(x float64) float64 {
		v, err := e.Eval(x)
		if err != nil {
			return math.NaN()
		}
		return v
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
