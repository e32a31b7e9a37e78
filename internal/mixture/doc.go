// Package mixture fits Gaussian mixture models to 2D data by
// Expectation-Maximization.
//
// The package works on gonum matrices throughout:
//
//   - [Model]: weighted multivariate normal components
//   - [Model.Responsibilities]: E-step in log space (LogSumExp normalized)
//   - [MStep]: weight / mean / covariance re-estimation
//   - [EM]: driver with convergence test and per-iteration history
//   - [KMeans]: Lloyd clustering, standalone or as an EM initializer
//
// # Convergence
//
// EM stops when the relative log-likelihood change drops below Tol:
//
//	|ll_t / ll_{t-1} - 1| < Tol
//
// The log-likelihood is non-decreasing across iterations for any valid
// initialization, which the tests rely on.
package mixture
