package health

import (
	"context"
	"fmt"
)

// Status represents the health of a probe or of a whole report.
type Status int

const (
	// StatusGreen indicates the probed component is healthy.
	StatusGreen Status = iota
	// StatusRed indicates the probed component is unhealthy.
	StatusRed
)

// String returns the wire representation of the status.
func (s Status) String() string {
	switch s {
	case StatusGreen:
		return "green"
	case StatusRed:
		return "red"
	default:
		return "red"
	}
}

// ParseStatus parses a wire status string.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "green":
		return StatusGreen, nil
	case "red":
		return StatusRed, nil
	default:
		return StatusRed, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// ProbeResult is the outcome of a single probe run. Children is non-empty
// only for composite probes; names are unique within one Children map.
// Results are value objects and must not be mutated once produced.
type ProbeResult struct {
	// Name is the probe name the result belongs to.
	Name string

	// Status is the probe's own status, before considering descendants.
	Status Status

	// Detail carries an optional human-readable explanation, typically
	// set when Status is red.
	Detail string

	// Children holds nested sub-probe results, keyed by sub-probe name.
	Children map[string]ProbeResult
}

// Green creates a healthy leaf result.
func Green(name string) ProbeResult {
	return ProbeResult{Name: name, Status: StatusGreen}
}

// Red creates an unhealthy leaf result with a detail message.
func Red(name, detail string) ProbeResult {
	return ProbeResult{Name: name, Status: StatusRed, Detail: detail}
}

// WithChildren returns a copy of the result with nested sub-results attached.
// The composite status is recomputed: a red child makes the parent red.
func (r ProbeResult) WithChildren(children map[string]ProbeResult) ProbeResult {
	r.Children = children
	for _, child := range children {
		if child.Rollup() == StatusRed {
			r.Status = StatusRed
			break
		}
	}
	return r
}

// Rollup reduces the result and all its descendants to a single status.
// Red dominates green at every level.
func (r ProbeResult) Rollup() Status {
	if r.Status == StatusRed {
		return StatusRed
	}
	for _, child := range r.Children {
		if child.Rollup() == StatusRed {
			return StatusRed
		}
	}
	return StatusGreen
}

// Probe is the capability every health check implements. A probe may be a
// leaf or a composite that nests sub-results under Children; callers depend
// only on this interface.
//
// Contract:
//   - Check must return within the deadline carried by ctx; it must never
//     block its caller beyond that.
//   - On internal failure Check must return an error rather than a
//     fabricated green result. The aggregator owns the conversion of
//     failures into red results.
type Probe interface {
	// Name returns the probe's name.
	Name() string

	// Check runs the probe and produces its result.
	Check(ctx context.Context) (ProbeResult, error)
}

// ProbeFunc is an adapter to allow ordinary functions to be used as Probes.
type ProbeFunc struct {
	name string
	fn   func(context.Context) (ProbeResult, error)
}

// NewProbeFunc creates a new ProbeFunc.
func NewProbeFunc(name string, fn func(context.Context) (ProbeResult, error)) *ProbeFunc {
	return &ProbeFunc{name: name, fn: fn}
}

// Name returns the name of this probe.
func (f *ProbeFunc) Name() string {
	return f.name
}

// Check runs the probe function.
func (f *ProbeFunc) Check(ctx context.Context) (ProbeResult, error) {
	return f.fn(ctx)
}

// Composite is a probe that runs named sub-probes and nests their results
// under Children. Sub-probes run concurrently with the same failure and
// timeout handling the aggregator applies to top-level probes.
type Composite struct {
	name   string
	probes []Probe
}

// NewComposite creates a composite probe over the given sub-probes.
// Duplicate sub-probe names are reported by Check, not here, so that the
// aggregator surfaces them as a configuration error for the whole run.
func NewComposite(name string, probes ...Probe) *Composite {
	return &Composite{name: name, probes: probes}
}

// Name returns the name of this probe.
func (c *Composite) Name() string {
	return c.name
}

// Check runs all sub-probes concurrently and reduces them into one result.
func (c *Composite) Check(ctx context.Context) (ProbeResult, error) {
	byName, err := probesByName(c.probes)
	if err != nil {
		return ProbeResult{}, err
	}

	children := collectResults(ctx, byName, nil)

	result := ProbeResult{Name: c.name, Status: StatusGreen}
	return result.WithChildren(children), nil
}

// probesByName indexes probes by name, failing on duplicates.
func probesByName(probes []Probe) (map[string]Probe, error) {
	byName := make(map[string]Probe, len(probes))
	for _, p := range probes {
		if _, exists := byName[p.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProbe, p.Name())
		}
		byName[p.Name()] = p
	}
	return byName, nil
}
