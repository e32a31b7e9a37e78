package mixture

import "errors"

// Domain errors for mixture fitting.
var (
	// ErrNoData indicates an empty observation matrix.
	ErrNoData = errors.New("mixture: no observations")

	// ErrTooFewPoints indicates fewer observations than components.
	ErrTooFewPoints = errors.New("mixture: fewer observations than components")

	// ErrDimensionMismatch indicates observations that do not match the model dimension.
	ErrDimensionMismatch = errors.New("mixture: dimension mismatch")

	// ErrNotPositiveDefinite indicates a covariance matrix whose Cholesky factorization failed.
	ErrNotPositiveDefinite = errors.New("mixture: covariance not positive definite")

	// ErrEmptyComponent indicates a component that captured no responsibility mass.
	ErrEmptyComponent = errors.New("mixture: component collapsed to zero weight")

	// ErrUnknownInitializer indicates an initializer name with no registration.
	ErrUnknownInitializer = errors.New("mixture: unknown initializer")
)
