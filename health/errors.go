package health

import "errors"

var (
	// ErrDuplicateProbe indicates two probes share one name in a single run.
	ErrDuplicateProbe = errors.New("health: duplicate probe name")

	// ErrNestingTooDeep indicates a result tree deeper than the wire format allows.
	ErrNestingTooDeep = errors.New("health: result nesting exceeds wire format depth")

	// ErrInvalidProbeName indicates a probe name the wire format rejects.
	ErrInvalidProbeName = errors.New("health: invalid probe name")

	// ErrUnknownStatus indicates a status string that is neither green nor red.
	ErrUnknownStatus = errors.New("health: unknown status")

	// ErrMissingSelfHref indicates rendering was attempted without a self link.
	ErrMissingSelfHref = errors.New("health: missing self href")
)
