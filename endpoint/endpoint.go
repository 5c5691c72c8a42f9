package endpoint

import (
	"encoding/json"
	"net/http"

	"github.com/svckit/svckit/health"
)

const jsonContentType = "application/json; charset=UTF-8"

type selfLink struct {
	Href string `json:"href"`
}

type links struct {
	Self selfLink `json:"self"`
}

type versionDocument struct {
	Version string `json:"version"`
	Links   links  `json:"links"`
}

type noopDocument struct {
	Links links `json:"links"`
}

// SelfURL rebuilds the request's own URL for links.self.href envelopes.
// It is health.SelfURL, re-exported so every endpoint builds its self link
// from one implementation.
func SelfURL(r *http.Request) string {
	return health.SelfURL(r)
}

// VersionHandler returns the handler for GET /_version. The response body
// carries the service's version and a self link:
//
//	{"version": "1.0.56", "links": {"self": {"href": ...}}}
func VersionHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := SelfURL(r)
		doc := versionDocument{
			Version: version,
			Links:   links{Self: selfLink{Href: location}},
		}
		writeDocument(w, location, doc)
	}
}

// NoopHandler returns the handler for GET /_noop, a minimal request/response
// round trip used to confirm the service is reachable and serving.
func NoopHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := SelfURL(r)
		doc := noopDocument{
			Links: links{Self: selfLink{Href: location}},
		}
		writeDocument(w, location, doc)
	}
}

// NotFoundHandler returns the catch-all handler for unmatched routes. It
// responds 404 with an empty JSON document for every method, and with no
// body for HEAD.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", jsonContentType)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("{}"))
	}
}

// RegisterHandlers registers the three standard endpoints on the given mux.
func RegisterHandlers(mux *http.ServeMux, version string, agg *health.Aggregator) {
	mux.HandleFunc("/_version", VersionHandler(version))
	mux.HandleFunc("/_noop", NoopHandler())
	mux.HandleFunc("/_health", health.Handler(agg))
}

func writeDocument(w http.ResponseWriter, location string, doc any) {
	body, err := json.Marshal(doc)
	if err != nil {
		w.Header().Set("Content-Type", jsonContentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("{}"))
		return
	}

	w.Header().Set("Content-Type", jsonContentType)
	w.Header().Set("Location", location)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
