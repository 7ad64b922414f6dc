package hxtime

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater is implemented by components to complete props decoded from a
// request. Called before every handler, including the default render.
//
// Time components use it to validate the value kind, assign a DOM id and
// sanitize the carried value, so handlers never see malformed props.
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by components to produce templ output.
// Called for GET requests and after action handlers that return OK.
//
// Render should be pure: it reads props and produces HTML.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// Lifecycle is the pair of methods every component provides.
type Lifecycle[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// HXComponent is implemented by components mounted on a Registry.
//
// HXPrefix returns the unique URL prefix for the component instance.
// HXServeHTTP handles every request under that prefix; components usually
// implement it by delegating to Component.Serve.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}

// binder is implemented by *Component[P] and promoted to embedding types.
// The registry uses it to hand over the shared encoder and error handler.
type binder interface {
	bind(enc *Encoder, onError ErrorHandler)
}
