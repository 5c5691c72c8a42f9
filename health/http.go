package health

import (
	"context"
	"net/http"
	"regexp"
	"time"
)

const jsonContentType = "application/json; charset=UTF-8"

// The quick query argument accepts the same spellings for true and false
// as the config-file conventions most services use.
var (
	truthyRE = regexp.MustCompile(`(?i)^(true|t|y|yes|1)$`)
	falsyRE  = regexp.MustCompile(`(?i)^(false|f|n|no|0)$`)
)

// parseQuick parses the quick query argument. Absent means quick. The third
// return is false when the value is unrecognized.
func parseQuick(r *http.Request) (bool, bool) {
	value := r.URL.Query().Get("quick")
	if value == "" {
		return true, true
	}
	if truthyRE.MatchString(value) {
		return true, true
	}
	if falsyRE.MatchString(value) {
		return false, true
	}
	return false, false
}

// SelfURL rebuilds the request's own URL for the links.self.href envelope.
// The scheme comes from the connection (TLS or not), overridden by
// X-Forwarded-Proto when a proxy terminates TLS upstream.
func SelfURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.Path
}

// HandlerOption configures the /_health handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	timeout time.Duration
}

// WithHandlerTimeout sets the request-level budget for a full probe run.
// The default is the aggregator's timeout plus one second of grace, so the
// handler can still render the report the aggregator produced at its own
// deadline.
func WithHandlerTimeout(d time.Duration) HandlerOption {
	return func(c *handlerConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Handler returns the HTTP handler for the GET /_health endpoint.
//
// The quick query argument (default yes) skips the probes entirely and
// reports green: it answers "is the process serving requests" without
// touching downstream dependencies. quick=false runs the full registered
// probe set through the aggregator. An unrecognized quick value is a 400.
//
// The status code follows the report: 200 for green, 503 for red. A red
// report is a normal response, not a server error.
func Handler(agg *Aggregator, opts ...HandlerOption) http.HandlerFunc {
	cfg := handlerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		quick, ok := parseQuick(r)
		if !ok {
			writeEmptyJSON(w, http.StatusBadRequest)
			return
		}

		var report Report
		if quick {
			report = Report{Status: StatusGreen}
		} else {
			timeout := agg.timeout + time.Second
			if cfg.timeout > 0 {
				timeout = cfg.timeout
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			var err error
			report, err = agg.Run(ctx)
			if err != nil {
				writeEmptyJSON(w, http.StatusInternalServerError)
				return
			}
		}

		location := SelfURL(r)
		body, err := Render(report, location)
		if err != nil {
			writeEmptyJSON(w, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", jsonContentType)
		w.Header().Set("Location", location)

		if report.Status == StatusGreen {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_, _ = w.Write(body)
	}
}

// LivenessHandler returns an HTTP handler for liveness probes.
// This is a simple check that the process is running.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func writeEmptyJSON(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte("{}"))
}
