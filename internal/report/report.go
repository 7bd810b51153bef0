// Package report prints solver outcomes for people reading a terminal.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bracket/internal/roots"
)

var (
	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ff88"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666688")).
			Italic(true)
)

type Reporter struct {
	w io.Writer
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Result prints one line on success, or a diagnostic naming the method and
// the reason on failure.
func (r *Reporter) Result(res roots.Result, err error) {
	if err == nil {
		fmt.Fprintf(r.w, "%s %s\n",
			okStyle.Render(res.Method.String()+" method:"),
			fmt.Sprintf("solution found in %d iterations", res.Iterations))
		fmt.Fprintf(r.w, "  root     = %s\n", valueStyle.Render(fmt.Sprintf("%.15g", res.Root)))
		fmt.Fprintf(r.w, "  |f(x)|   = %s\n", valueStyle.Render(fmt.Sprintf("%.3e", res.Residual)))
		return
	}

	fmt.Fprintf(r.w, "%s %s\n", failStyle.Render(res.Method.String()+" method:"), Reason(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(r.w, "  "+hintStyle.Render(hint))
	}
	if errors.Is(err, roots.ErrNotConverged) {
		fmt.Fprintf(r.w, "  best estimate = %.15g (|f| = %.3e)\n", res.Root, res.Residual)
	}
}

// Reason is a short description of why a solve failed.
func Reason(err error) string {
	var (
		nb *roots.NoBracketError
		de *roots.DegenerateIntervalError
		ce *roots.ConvergenceError
	)
	switch {
	case errors.As(err, &nb):
		return fmt.Sprintf("no root enclosed in [%g, %g]", nb.Interval.Lower, nb.Interval.Upper)
	case errors.As(err, &de):
		return fmt.Sprintf("degenerate interval [%g, %g] at iteration %d", de.Interval.Lower, de.Interval.Upper, de.Iteration)
	case errors.As(err, &ce):
		return fmt.Sprintf("method failed to find the root in %d iterations", ce.Iterations)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "not started: " + err.Error()
	default:
		return err.Error()
	}
}

func Hint(err error) string {
	switch {
	case errors.Is(err, roots.ErrNotConverged):
		return "you may try a narrower interval"
	case errors.Is(err, roots.ErrNoBracket):
		return "f must change sign between the bounds"
	case errors.Is(err, roots.ErrDegenerateInterval):
		return "f(lower) == f(upper); try bisection"
	}
	return ""
}

// Table prints one row per outcome.
func (r *Reporter) Table(outcomes []roots.Outcome) error {
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMETHOD\tROOT\tITER\tRESIDUAL\tSTATUS")

	for _, o := range outcomes {
		status := "ok"
		if o.Err != nil {
			status = Reason(o.Err)
		}
		fmt.Fprintf(w, "%s\t%s\t%.12g\t%d\t%.3e\t%s\n",
			o.Name,
			o.Result.Method,
			o.Result.Root,
			o.Result.Iterations,
			o.Result.Residual,
			status,
		)
	}
	return w.Flush()
}
