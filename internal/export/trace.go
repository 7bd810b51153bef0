package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/bracket/internal/roots"
)

var TraceHeader = []string{"iteration", "lower", "upper", "estimate", "residual"}

// TraceData is the JSON document for one solver run.
type TraceData struct {
	ID         string                 `json:"id,omitempty"`
	Method     string                 `json:"method"`
	Expr       string                 `json:"expr,omitempty"`
	Lower      float64                `json:"lower"`
	Upper      float64                `json:"upper"`
	Root       float64                `json:"root"`
	Iterations int                    `json:"iterations"`
	Residual   float64                `json:"residual"`
	Converged  bool                   `json:"converged"`
	Steps      []roots.IterationState `json:"steps"`
}

// TraceCSV writes a header row and one row per iteration.
func TraceCSV(w io.Writer, states []roots.IterationState) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TraceHeader); err != nil {
		return err
	}
	for _, s := range states {
		row := []string{
			strconv.Itoa(s.Iteration),
			formatFloat(s.Interval.Lower),
			formatFloat(s.Interval.Upper),
			formatFloat(s.Estimate),
			formatFloat(s.Residual),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseTraceCSV reads what TraceCSV wrote.
func ParseTraceCSV(r io.Reader) ([]roots.IterationState, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(TraceHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []roots.IterationState{}, nil
	}

	states := make([]roots.IterationState, 0, len(records)-1)
	for i, rec := range records[1:] {
		n, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("export: trace row %d: %w", i+1, err)
		}
		vals := make([]float64, 4)
		for j := range vals {
			vals[j], err = strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("export: trace row %d: %w", i+1, err)
			}
		}
		states = append(states, roots.IterationState{
			Iteration: n,
			Interval:  roots.Interval{Lower: vals[0], Upper: vals[1]},
			Estimate:  vals[2],
			Residual:  vals[3],
		})
	}
	return states, nil
}

func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSONFile writes v to path as indented JSON.
func JSONFile(path string, v any) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer CloseFile(file, path, &err)

	if err := JSON(file, v); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}
