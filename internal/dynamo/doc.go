// Package dynamo provides the primitives for integrating ordinary
// differential equations dX/dt = f(X, t):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE right-hand sides
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Simulator]: orchestrates a run and records the trajectory
//
// # Example
//
//	dyn := models.NewDecay(1.0)
//	s := dynamo.New(dyn, integrators.NewHeun())
//	result, _ := s.Run(ctx, dynamo.State{1}, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe; integrators may keep scratch
// buffers between steps. Use one Simulator per goroutine.
package dynamo
