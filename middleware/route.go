package middleware

import (
	"net/http"
	"strings"
)

// Route identifies a component request.
type Route struct {
	Component string
	Action    string
}

// ParseRoute extracts the component and action from a component URL path.
// Paths outside the "/_c/" tree yield component "unknown".
func ParseRoute(path string) Route {
	rest, ok := strings.CutPrefix(path, "/_c/")
	if !ok {
		return Route{Component: "unknown", Action: "unknown"}
	}

	prefix, action, _ := strings.Cut(rest, "/")
	name := prefix
	if i := strings.LastIndexByte(prefix, '-'); i > 0 {
		name = prefix[:i]
	}
	action = strings.Trim(action, "/")
	if action == "" {
		action = "render"
	}
	return Route{Component: name, Action: action}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
