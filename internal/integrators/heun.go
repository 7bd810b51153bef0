package integrators

import "github.com/san-kum/bracket/internal/dynamo"

// Heun is the second-order Euler-Runge-Kutta method: an Euler predictor
// followed by the trapezoidal corrector.
type Heun struct {
	k1, predictor dynamo.State
}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) ensureScratch(n int) {
	if len(h.k1) != n {
		h.k1 = make(dynamo.State, n)
		h.predictor = make(dynamo.State, n)
	}
}

func (h *Heun) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	n := len(x)
	h.ensureScratch(n)

	copy(h.k1, dyn.Derive(x, t))
	for i := 0; i < n; i++ {
		h.predictor[i] = x[i] + dt*h.k1[i]
	}
	k2 := dyn.Derive(h.predictor, t+dt)

	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = x[i] + 0.5*dt*(h.k1[i]+k2[i])
	}
	return result
}
