// Package observe provides telemetry plumbing for services built on this
// library: structured JSON logging, OpenTelemetry tracing and metrics, and a
// middleware that instruments health-check execution.
//
// An Observer bundles the three concerns behind one handle:
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "orders",
//	    Version:     "1.4.2",
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//
// Components accept the pieces they need (a Logger, a Middleware) as explicit
// dependencies; nothing in this package installs process-global state beyond
// the OpenTelemetry provider registration performed at construction.
package observe
