package config

import "sort"

// Presets are named test problems. Colebrook solves for the Darcy friction
// factor of a pipe with relative roughness 0.024651 at Re = 9655526.5.
var Presets = map[string]ProblemConfig{
	"sqrt2":     {Expr: "x**2 - 2", Lower: 0, Upper: 2},
	"linear":    {Expr: "x - 1", Lower: 0, Upper: 5},
	"cosine":    {Expr: "cos(x)", Lower: 1, Upper: 2},
	"cubic":     {Expr: "x**3 - x - 2", Lower: 1, Upper: 2},
	"exp":       {Expr: "exp(x) - 10", Lower: 0, Upper: 5},
	"colebrook": {Expr: "1/sqrt(x) + 2*log10(0.024651/3.7 + 2.51/(9655526.5*sqrt(x)))", Lower: 0.02, Upper: 0.07},
	"no-root":   {Expr: "x**2 + 1", Lower: 1, Upper: 2},
}

func GetPreset(name string) (ProblemConfig, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
