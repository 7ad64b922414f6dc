// Package middleware instruments component routes.
//
// Metrics counts and times every component request with Prometheus,
// labelled by component and action. Tracing opens an OpenTelemetry server
// span per request. Both wrap the handler returned by Registry.Handler:
//
//	h := middleware.Metrics(middleware.WithRegistry(promReg))(reg.Handler())
//	h = middleware.Tracing()(h)
//	mux.Handle("/_c/", h)
//
// Component and action labels come from the URL: "/_c/timefield-1a2b3c4d/
// increment" is component "timefield", action "increment". The default
// render is action "render".
package middleware
