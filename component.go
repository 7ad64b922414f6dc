package hxtime

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
)

// Handler is the signature of an action handler. The request is available
// for form values; props are already decoded and hydrated.
type Handler[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// actionDef holds metadata about a registered action.
type actionDef[P any] struct {
	name    string
	method  string
	handler Handler[P]
}

// Component is the base type embedded by time components.
// P is the props type; it must implement Encodable and *P Decodable so
// state can travel in URLs.
//
//	type Field struct {
//	    *hxtime.Component[Props]
//	}
//
//	func New() *Field {
//	    f := &Field{Component: hxtime.New[Props]("timefield")}
//	    f.Action("increment", f.handleIncrement)
//	    return f
//	}
//
// Each instance receives a deterministic URL prefix derived from its name and
// the source location of the New call.
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	encoder   *Encoder
	onError   ErrorHandler
}

// New creates a component named name. Props are signed by default.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
	}
}

// Sensitive switches the component to encrypted props.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Prefix returns the component's URL prefix.
func (c *Component[P]) Prefix() string {
	return c.prefix
}

// HXPrefix implements HXComponent.
func (c *Component[P]) HXPrefix() string {
	return c.prefix
}

// IsSensitive returns whether the component uses encrypted props.
func (c *Component[P]) IsSensitive() bool {
	return c.sensitive
}

// Action registers a named handler, POST by default.
//
//	c.Action("increment", c.handleIncrement)
//	c.Action("peek", c.handlePeek).Method(http.MethodGet)
func (c *Component[P]) Action(name string, handler Handler[P]) *ActionBuilder {
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// ActionNames returns the registered action names.
func (c *Component[P]) ActionNames() []string {
	names := make([]string, 0, len(c.actions))
	for name := range c.actions {
		names = append(names, name)
	}
	return names
}

// Encoder returns the encoder set by the registry, or nil before Add.
func (c *Component[P]) Encoder() *Encoder {
	return c.encoder
}

func (c *Component[P]) bind(enc *Encoder, onError ErrorHandler) {
	c.encoder = enc
	c.onError = onError
}

// URL builds the request URL for action with props encoded in the query.
// An empty action addresses the default render.
func (c *Component[P]) URL(action string, props P) string {
	path, encoded := c.actionURL(action, props)
	if encoded == "" {
		return path
	}
	return path + "?p=" + encoded
}

// Wire returns the HTMX attributes that invoke action with props.
// Unknown actions are wired as GET renders.
func (c *Component[P]) Wire(action string, props P) templ.Attributes {
	method := http.MethodGet
	if def, ok := c.actions[action]; ok {
		method = def.method
	}
	path, encoded := c.actionURL(action, props)
	return WireAttrs(path, method, encoded)
}

// Refresh returns the attributes for re-rendering the component.
func (c *Component[P]) Refresh(props P) templ.Attributes {
	return c.Wire("", props)
}

func (c *Component[P]) actionURL(action string, props P) (string, string) {
	path := c.prefix + "/" + action
	if c.encoder == nil {
		return path, ""
	}
	encoded, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		return path, ""
	}
	return path, encoded
}

// Serve decodes props from the request, hydrates them, dispatches to the
// matching action and writes the result. Components implement HXServeHTTP
// by calling Serve with themselves as the lifecycle.
func (c *Component[P]) Serve(w http.ResponseWriter, r *http.Request, lc Lifecycle[P]) {
	props, err := c.decode(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}

	ctx := r.Context()
	if err := lc.Hydrate(ctx, &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %w", ErrHydrationFailed, err))
		return
	}

	action := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	if action == "" && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		writeComponent(w, r, lc.Render(ctx, props), "")
		return
	}

	def, ok := c.actions[action]
	if !ok || def.method != r.Method {
		c.fail(w, r, fmt.Errorf("%w: %s %s", ErrNotFound, r.Method, r.URL.Path))
		return
	}

	c.apply(w, r, lc, def.handler(ctx, props, r))
}

func (c *Component[P]) decode(r *http.Request) (P, error) {
	var props P
	encoded := r.URL.Query().Get("p")
	if encoded == "" && r.Method != http.MethodGet {
		encoded = r.PostFormValue("p")
	}
	if encoded == "" {
		return props, nil
	}
	if c.encoder == nil {
		return props, fmt.Errorf("%w: component %q is not registered", ErrInvalidFormat, c.name)
	}
	if err := c.encoder.Decode(encoded, c.sensitive, &props); err != nil {
		return props, wrapEncodingError(err)
	}
	return props, nil
}

// apply writes headers, events and flashes for result, then renders.
func (c *Component[P]) apply(w http.ResponseWriter, r *http.Request, lc Lifecycle[P], result Result[P]) {
	if err := result.GetErr(); err != nil {
		c.fail(w, r, err)
		return
	}

	h := w.Header()
	for k, v := range result.GetHeaders() {
		h.Set(k, v)
	}
	if redirect := result.GetRedirect(); redirect != "" {
		h.Set("HX-Redirect", redirect)
		w.WriteHeader(http.StatusOK)
		return
	}
	if trigger := BuildTriggerHeader(result.GetEvents()); trigger != "" {
		h.Set("HX-Trigger", trigger)
	}
	if result.ShouldSkip() {
		return
	}

	status := result.GetStatus()
	if status != 0 {
		h.Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	writeComponent(w, r, lc.Render(r.Context(), result.GetProps()), RenderFlashesOOB(result.GetFlashes()))
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if c.onError != nil {
		c.onError(w, r, err)
		return
	}
	defaultErrorHandler(w, r, err)
}

func writeComponent(w http.ResponseWriter, r *http.Request, comp templ.Component, trailer string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := comp.Render(r.Context(), w); err != nil {
		return
	}
	if trailer != "" {
		_, _ = w.Write([]byte(trailer))
	}
}

// componentHash derives a short deterministic hash from the component name
// and the caller's source location.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}
