package roots

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is one independent Solve call.
type Job struct {
	Name   string
	Method Method
	Lower  float64
	Upper  float64
	F      Func
	Config Config
}

type Outcome struct {
	Name   string
	Result Result
	Err    error
}

// SolveAll runs every job concurrently with at most limit in flight
// (limit <= 0 means no limit). Outcomes keep the order of jobs. A failing job
// does not stop the others; jobs not yet started when ctx is done report
// ctx.Err().
func SolveAll(ctx context.Context, jobs []Job, limit int) []Outcome {
	out := make([]Outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			out[i].Name = job.Name
			if err := ctx.Err(); err != nil {
				out[i].Result = Result{Method: job.Method}
				out[i].Err = err
				return nil
			}
			out[i].Result, out[i].Err = Solve(job.Method, job.Lower, job.Upper, job.F, job.Config)
			return nil
		})
	}

	_ = g.Wait()
	return out
}
