// Package endpoint provides the standard operational endpoints every
// service built on this library exposes: /_version, /_noop, and /_health,
// plus a JSON 404 catch-all for unmatched routes.
//
//	mux := http.NewServeMux()
//	endpoint.RegisterHandlers(mux, "1.0.56", agg)
//	mux.HandleFunc("/", endpoint.NotFoundHandler())
//
// Every response carries a links.self.href envelope pointing back at the
// request URL, so callers can confirm which instance and path answered.
package endpoint
