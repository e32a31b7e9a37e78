package anneal

import "errors"

// Domain errors for annealing runs.
var (
	// ErrUnknownProposal indicates a proposal kernel name with no registration.
	ErrUnknownProposal = errors.New("anneal: unknown proposal")

	// ErrBadSchedule indicates a cooling schedule with invalid parameters.
	ErrBadSchedule = errors.New("anneal: cooling rate must be in (0, 1) with positive start temperature")

	// ErrBadGrid indicates a landscape grid that is too small to walk on.
	ErrBadGrid = errors.New("anneal: grid must be at least 2x2")

	// ErrOutOfBounds indicates a walker coordinate outside the grid.
	ErrOutOfBounds = errors.New("anneal: coordinate outside landscape grid")
)
