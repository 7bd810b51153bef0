// Package viz replays a recorded root-finding run in the terminal.
//
// The replay is a Bubble Tea program over a [roots.Trace]. Each frame shows
// the current bracket on a number line, the estimate inside it, the residual
// and a plot of the residual history up to the current iteration.
//
// # Key Bindings
//
//	Space   - Play/Pause
//	→ / n   - Next iteration
//	← / p   - Previous iteration
//	R       - Back to the first iteration
//	Q       - Quit
package viz
