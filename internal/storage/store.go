package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/facette/natsort"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/bracket/internal/export"
	"github.com/san-kum/bracket/internal/roots"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

// Store keeps one directory per solver run under baseDir.
type Store struct {
	baseDir string
	logger  *zap.Logger
}

func New(baseDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Expr       string    `json:"expr"`
	Lower      float64   `json:"lower"`
	Upper      float64   `json:"upper"`
	MaxIter    int       `json:"max_iter"`
	Tol        float64   `json:"tol"`
	Root       float64   `json:"root"`
	Iterations int       `json:"iterations"`
	Residual   float64   `json:"residual"`
	Converged  bool      `json:"converged"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Run is everything Save needs about one Solve call.
type Run struct {
	Expr    string
	Lower   float64
	Upper   float64
	MaxIter int
	Tol     float64
	Result  roots.Result
	Err     error
	Trace   []roots.IterationState
}

// Save writes metadata.json and trace.csv into a fresh run directory and
// returns the run id.
func (s *Store) Save(run Run) (id string, err error) {
	runID := fmt.Sprintf("%s_%s", run.Result.Method, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Method:     run.Result.Method.String(),
		Expr:       run.Expr,
		Lower:      run.Lower,
		Upper:      run.Upper,
		MaxIter:    run.MaxIter,
		Tol:        run.Tol,
		Root:       finite(run.Result.Root),
		Iterations: run.Result.Iterations,
		Residual:   finite(run.Result.Residual),
		Converged:  run.Result.Converged,
		Timestamp:  time.Now(),
	}
	if run.Err != nil {
		meta.Error = run.Err.Error()
	}

	if err := export.JSONFile(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	tracePath := filepath.Join(runDir, traceFile)
	tf, err := os.Create(tracePath)
	if err != nil {
		return "", err
	}
	defer export.CloseFile(tf, tracePath, &err)

	if err := export.TraceCSV(tf, run.Trace); err != nil {
		return "", err
	}

	s.logger.Debug("run saved", zap.String("id", runID), zap.String("dir", runDir), zap.Int("steps", len(run.Trace)))
	return runID, nil
}

// List returns the metadata of every readable run, ordered naturally by id.
// Unreadable run directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping run", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return natsort.Compare(runs[i].ID, runs[j].ID)
	})
	return runs, nil
}

// finite maps NaN and Inf to 0, which encoding/json cannot represent.
// The run's Error field still says what went wrong.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]roots.IterationState, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	states, err := export.ParseTraceCSV(file)
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return states, nil
}
