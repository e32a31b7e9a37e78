// Package anneal implements simulated annealing over a discretized 2D
// energy landscape.
//
// The landscape is the absolute-value peaks function evaluated on an n x n
// grid, normalized to a probability surface; energy is its negative log.
// A Metropolis walker explores the grid under a cooling schedule:
//
//   - [Landscape]: pdf and energy grids plus heat-bath snapshots
//   - [Proposal]: move kernel (gaussian step or uniform jump)
//   - [Schedule]: temperature sequence (geometric cooling)
//   - [Walker]: single proposal/accept cycle, used by the live view
//   - [Annealer]: full run over a fixed sample budget with history
//
// # Acceptance Rule
//
// A proposed move is always accepted when it lowers the energy; an uphill
// move of deltaE at temperature T is accepted with probability
// exp(-deltaE/T):
//
//	p := anneal.Acceptance(eNew-eCur, temp)
//	if rng.Float64() <= p { ... }
package anneal
