// Package export writes sampled (x, y) data and solver traces to files.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// IOError is returned when a destination cannot be opened or written.
// Callers decide whether it is fatal; nothing here retries.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("I/O error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CloseFile closes c, typically in a defer, and reports a failed close
// through *err unless an earlier error is already there.
func CloseFile(c io.Closer, path string, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = &IOError{Op: "close", Path: path, Err: cerr}
	}
}

// WriteDat writes one "x \t y" row per pair in %23.15e format.
func WriteDat(path string, xs, ys []float64) (err error) {
	if len(xs) != len(ys) {
		return fmt.Errorf("export: %d x values but %d y values", len(xs), len(ys))
	}

	file, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer CloseFile(file, path, &err)

	w := bufio.NewWriter(file)
	for i := range xs {
		if _, err := fmt.Fprintf(w, "%23.15e \t %23.15e \n", xs[i], ys[i]); err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ReadDat reads whitespace-separated pairs back. Blank lines are skipped.
func ReadDat(path string) ([]float64, []float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	var xs, ys []float64
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("export: %s:%d: expected 2 numbers, got %d", path, line, len(parts))
		}

		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("export: %s:%d: %w", path, line, err)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("export: %s:%d: %w", path, line, err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return xs, ys, nil
}
