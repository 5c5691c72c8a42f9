// Package health provides the health-check core for services built on this
// library: probes, concurrent aggregation under a deadline, and rendering of
// the standard health document served at /_health.
//
// # Core Concepts
//
// A Probe is any component that can report its own health as a green or red
// ProbeResult. Probes are polymorphic over the single Check capability: a
// probe may be a leaf, or a Composite that nests sub-probe results under
// Children. Red dominates green at every level of the reduction.
//
// # Running Probes
//
// Use an Aggregator to run a set of named probes concurrently:
//
//	agg := health.New(health.WithTimeout(3 * time.Second))
//	agg.Register(health.NewMemoryProbe(health.MemoryProbeConfig{}))
//	agg.Register(health.NewProbeFunc("database", pingDatabase))
//
//	report, err := agg.Run(ctx)
//
// Every probe yields exactly one result. A probe that returns an error
// becomes a red leaf carrying the error text; a probe still running at the
// deadline becomes a red "timeout" leaf and its eventual result is
// discarded. The run itself always returns within the configured timeout
// plus scheduling overhead; a red report is data, not an error.
//
// # Wire Format
//
// Render produces the document served by the health endpoint:
//
//	{"status": "green", "details": {"database": "green"}, "links": {"self": {"href": ...}}}
//
// The wire format supports two levels of nesting; deeper result trees are a
// configuration error at render time.
//
// # HTTP
//
// Handler serves GET /_health, selecting 200 for green and 503 for red. The
// quick query argument (default yes) skips the probes and reports green.
package health
