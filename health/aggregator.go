package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/svckit/svckit/observe"
)

// DefaultTimeout bounds an aggregation run when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Report is the aggregated outcome of one run over a set of probes.
// A report is built fresh on every run and never cached.
type Report struct {
	// ID identifies the run the report came from.
	ID string

	// Status is the reduction of every result at every nesting depth:
	// red if any descendant is red, green otherwise. An empty probe set
	// is green.
	Status Status

	// Details maps probe name to its result, preserving the registered
	// name association. Iteration order is not significant.
	Details map[string]ProbeResult

	// SelfLink is the URI of the endpoint the report was produced for.
	// It is filled in by the HTTP layer, not by the aggregator.
	SelfLink string
}

// Aggregator runs a set of named probes concurrently under a hard deadline
// and reduces their results into one Report.
type Aggregator struct {
	timeout    time.Duration
	logger     observe.Logger
	middleware *observe.Middleware

	mu     sync.RWMutex
	probes map[string]Probe
	order  []string // registration order, for ProbeNames
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithTimeout sets the hard bound on a whole aggregation run.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the logger used for run-level records.
func WithLogger(l observe.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMiddleware instruments every probe check with the given middleware
// (span, metrics, log record per check).
func WithMiddleware(mw *observe.Middleware) Option {
	return func(a *Aggregator) {
		a.middleware = mw
	}
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		timeout: DefaultTimeout,
		logger:  observe.NewNopLogger(),
		probes:  make(map[string]Probe),
		order:   make([]string, 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register adds a probe under its own name. Registering a second probe with
// a name already taken is a configuration error, never a silent overwrite.
func (a *Aggregator) Register(p Probe) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := p.Name()
	if _, exists := a.probes[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProbe, name)
	}
	a.probes[name] = p
	a.order = append(a.order, name)
	return nil
}

// Unregister removes a probe by name.
func (a *Aggregator) Unregister(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.probes, name)

	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// ProbeNames returns the names of all registered probes in registration order.
func (a *Aggregator) ProbeNames() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Run executes every registered probe concurrently and reduces the results
// into one Report. A red report is a normal return: the error is non-nil only
// for configuration problems, never for probe failures or timeouts.
func (a *Aggregator) Run(ctx context.Context) (Report, error) {
	a.mu.RLock()
	probes := make(map[string]Probe, len(a.probes))
	for name, p := range a.probes {
		probes[name] = p
	}
	a.mu.RUnlock()

	return a.run(ctx, probes), nil
}

// RunProbes executes a caller-supplied probe set instead of the registered
// one. Duplicate probe names fail the call with ErrDuplicateProbe.
func (a *Aggregator) RunProbes(ctx context.Context, probes []Probe) (Report, error) {
	byName, err := probesByName(probes)
	if err != nil {
		return Report{}, err
	}
	return a.run(ctx, byName), nil
}

func (a *Aggregator) run(ctx context.Context, probes map[string]Probe) Report {
	runID := uuid.NewString()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	results := collectResults(ctx, probes, &checkRun{id: runID, middleware: a.middleware})

	report := Report{
		ID:      runID,
		Status:  Rollup(results),
		Details: results,
	}

	a.logger.Info(ctx, "health check run completed",
		observe.Field{Key: "run", Value: runID},
		observe.Field{Key: "status", Value: report.Status.String()},
		observe.Field{Key: "probes", Value: len(probes)},
		observe.Field{Key: "duration_ms", Value: float64(time.Since(start).Milliseconds())},
	)

	return report
}

// Rollup reduces a set of results to a single status: red if any result at
// any nesting depth is red, green otherwise (including the empty set).
func Rollup(results map[string]ProbeResult) Status {
	for _, r := range results {
		if r.Rollup() == StatusRed {
			return StatusRed
		}
	}
	return StatusGreen
}

// checkRun carries per-run instrumentation through the fan-out.
type checkRun struct {
	id         string
	middleware *observe.Middleware
}

// collectResults fans out one check per probe and joins them under the
// deadline carried by ctx. Every probe yields exactly one result: its own on
// normal completion, a synthesized red leaf on failure or timeout. Probes
// still running at the deadline are abandoned, not killed; their late results
// are discarded.
func collectResults(ctx context.Context, probes map[string]Probe, run *checkRun) map[string]ProbeResult {
	results := make(map[string]ProbeResult, len(probes))
	if len(probes) == 0 {
		return results
	}

	var mu sync.Mutex
	g := new(errgroup.Group)

	for name, p := range probes {
		g.Go(func() error {
			res := runProbe(ctx, name, p, run)
			mu.Lock()
			results[name] = res
			mu.Unlock()
			return nil
		})
	}

	// Group goroutines return promptly at the deadline even when a probe
	// does not, so Wait is bounded by ctx.
	_ = g.Wait()

	return results
}

// runProbe executes one probe, converting failure into a red result and
// abandoning the check at the deadline.
func runProbe(ctx context.Context, name string, p Probe, run *checkRun) ProbeResult {
	done := make(chan ProbeResult, 1)

	go func() {
		var out ProbeResult
		check := func(ctx context.Context, _ observe.CheckMeta) error {
			res, err := p.Check(ctx)
			if err != nil {
				return err
			}
			out = res
			return nil
		}

		meta := observe.CheckMeta{Probe: name}
		if run != nil {
			meta.Run = run.id
			if run.middleware != nil {
				check = run.middleware.Wrap(check)
			}
		}

		if err := check(ctx, meta); err != nil {
			done <- Red(name, err.Error())
			return
		}
		// Enforce the caller-supplied name association.
		out.Name = name
		done <- out
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return Red(name, "timeout")
	}
}
