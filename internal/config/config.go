package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bracket/internal/roots"
)

const (
	DefaultMethod     = "shifter"
	DefaultDataDir    = ".bracket"
	DefaultModel      = "decay"
	DefaultIntegrator = "rk4"
	DefaultT1         = 5.0
	DefaultSteps      = 255
	DefaultY0         = 1.0
	DefaultRate       = 1.0
)

type Config struct {
	Solver  SolverConfig  `yaml:"solver" toml:"solver"`
	Problem ProblemConfig `yaml:"problem" toml:"problem"`
	ODE     ODEConfig     `yaml:"ode" toml:"ode"`
	DataDir string        `yaml:"data_dir" toml:"data_dir"`
	Verbose bool          `yaml:"verbose" toml:"verbose"`
}

type SolverConfig struct {
	Method  string  `yaml:"method" toml:"method"`
	MaxIter int     `yaml:"max_iter" toml:"max_iter"`
	Tol     float64 `yaml:"tol" toml:"tol"`
}

// ProblemConfig is the equation f(x) = 0 and the interval to search.
type ProblemConfig struct {
	Expr  string  `yaml:"expr" toml:"expr"`
	Lower float64 `yaml:"lower" toml:"lower"`
	Upper float64 `yaml:"upper" toml:"upper"`
}

type ODEConfig struct {
	Model      string   `yaml:"model" toml:"model"`
	Integrator string   `yaml:"integrator" toml:"integrator"`
	T0         float64  `yaml:"t0" toml:"t0"`
	T1         float64  `yaml:"t1" toml:"t1"`
	Y0         float64  `yaml:"y0" toml:"y0"`
	Rate       float64  `yaml:"rate" toml:"rate"`
	Steps      int      `yaml:"steps" toml:"steps"`
	Output     string   `yaml:"output" toml:"output"`
	Crossing   *float64 `yaml:"crossing,omitempty" toml:"crossing,omitempty"`
}

func DefaultConfig() *Config {
	p := Presets["sqrt2"]
	return &Config{
		Solver: SolverConfig{
			Method:  DefaultMethod,
			MaxIter: roots.DefaultMaxIter,
			Tol:     roots.DefaultTol,
		},
		Problem: p,
		ODE: ODEConfig{
			Model:      DefaultModel,
			Integrator: DefaultIntegrator,
			T1:         DefaultT1,
			Y0:         DefaultY0,
			Rate:       DefaultRate,
			Steps:      DefaultSteps,
			Output:     ".",
		},
		DataDir: DefaultDataDir,
	}
}

// Load reads a yaml or toml file, picked by extension, over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported format %q", ext)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	default:
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RootsConfig converts the solver section into a roots.Config.
func (c *Config) RootsConfig() roots.Config {
	rc := roots.DefaultConfig()
	rc.MaxIter = c.Solver.MaxIter
	rc.Tol = c.Solver.Tol
	return rc
}

func (c *Config) Method() (roots.Method, error) {
	return roots.ParseMethod(c.Solver.Method)
}
