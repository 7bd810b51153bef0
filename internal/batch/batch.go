// Package batch runs a scripted set of root-finding problems from a YAML file.
package batch

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bracket/internal/config"
	"github.com/san-kum/bracket/internal/expr"
	"github.com/san-kum/bracket/internal/roots"
)

// Batch is a named list of problems.
type Batch struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Limit       int       `yaml:"limit"`
	Jobs        []JobSpec `yaml:"jobs"`
}

// JobSpec is a single problem. Either Expr or Preset names the function;
// explicit bounds override the preset's.
type JobSpec struct {
	Name    string   `yaml:"name"`
	Method  string   `yaml:"method"`
	Expr    string   `yaml:"expr"`
	Preset  string   `yaml:"preset"`
	Lower   *float64 `yaml:"lower"`
	Upper   *float64 `yaml:"upper"`
	MaxIter int      `yaml:"max_iter"`
	Tol     float64  `yaml:"tol"`
}

func Load(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("batch: %s: %w", path, err)
	}
	if len(b.Jobs) == 0 {
		return nil, fmt.Errorf("batch: %s: no jobs", path)
	}
	return &b, nil
}

// Job resolves a spec into a roots.Job. Job i is named "job-<i+1>" when the
// spec leaves the name empty. An empty method means shifter.
func (s JobSpec) Job(i int, logger *zap.Logger) (roots.Job, error) {
	name := s.Name
	if name == "" {
		name = fmt.Sprintf("job-%d", i+1)
	}

	m := roots.Shifter
	if s.Method != "" {
		var err error
		if m, err = roots.ParseMethod(s.Method); err != nil {
			return roots.Job{}, fmt.Errorf("%s: %w", name, err)
		}
	}

	var p config.ProblemConfig
	if s.Preset != "" {
		var ok bool
		if p, ok = config.GetPreset(s.Preset); !ok {
			return roots.Job{}, fmt.Errorf("%s: unknown preset %q", name, s.Preset)
		}
	}
	if s.Expr != "" {
		p.Expr = s.Expr
	}
	if s.Lower != nil {
		p.Lower = *s.Lower
	}
	if s.Upper != nil {
		p.Upper = *s.Upper
	}
	if p.Expr == "" {
		return roots.Job{}, fmt.Errorf("%s: needs expr or preset", name)
	}

	e, err := expr.Compile(p.Expr)
	if err != nil {
		return roots.Job{}, fmt.Errorf("%s: %w", name, err)
	}

	cfg := roots.DefaultConfig()
	cfg.MaxIter = s.MaxIter
	cfg.Tol = s.Tol
	cfg.Logger = logger.With(zap.String("job", name))

	return roots.Job{
		Name:   name,
		Method: m,
		Lower:  p.Lower,
		Upper:  p.Upper,
		F:      e.Func(),
		Config: cfg,
	}, nil
}

// Run builds every job and solves them concurrently. A spec that fails to
// build stops the batch before anything runs; a job that fails to solve
// does not.
func Run(ctx context.Context, b *Batch, logger *zap.Logger) ([]roots.Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	jobs := make([]roots.Job, 0, len(b.Jobs))
	for i, spec := range b.Jobs {
		job, err := spec.Job(i, logger)
		if err != nil {
			return nil, fmt.Errorf("batch %s: %w", b.Name, err)
		}
		jobs = append(jobs, job)
	}

	logger.Info("running batch", zap.String("name", b.Name), zap.Int("jobs", len(jobs)), zap.Int("limit", b.Limit))
	outcomes := roots.SolveAll(ctx, jobs, b.Limit)

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			logger.Debug("job failed", zap.String("job", o.Name), zap.Error(o.Err))
		}
	}
	logger.Info("batch done", zap.String("name", b.Name), zap.Int("failed", failed))
	return outcomes, nil
}
