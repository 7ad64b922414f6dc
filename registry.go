package hxtime

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used by the default error handler.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(reg *Registry) {
		if l != nil {
			reg.logger = l
		}
	}
}

// WithErrorHandler replaces the default error handler.
func WithErrorHandler(h ErrorHandler) RegistryOption {
	return func(reg *Registry) {
		if h != nil {
			reg.onError = h
		}
	}
}

// Registry mounts components and routes requests to them.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent
	logger     *slog.Logger
	onError    ErrorHandler
}

// NewRegistry creates a registry whose components encode props with key.
func NewRegistry(key []byte, opts ...RegistryOption) (*Registry, error) {
	enc, err := NewEncoder(key)
	if err != nil {
		return nil, fmt.Errorf("hxtime: create encoder: %w", err)
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		logger:     slog.Default(),
	}
	reg.onError = reg.logError
	for _, opt := range opts {
		opt(reg)
	}
	return reg, nil
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components. It panics on a prefix collision, since that is
// a wiring mistake detected at startup.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("hxtime: prefix collision for %q", prefix))
		}
		if b, ok := comp.(binder); ok {
			b.bind(reg.encoder, reg.onError)
		}
		reg.components[prefix] = comp
		reg.mux.HandleFunc(prefix+"/", comp.HXServeHTTP)
	}
}

// Prefixes returns the mounted prefixes in sorted order.
func (reg *Registry) Prefixes() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]string, 0, len(reg.components))
	for p := range reg.components {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Handler returns the HTTP handler for component routes. Mount it at "/_c/".
//
// Mutating methods must carry HX-Request: true. Browsers cannot set that
// header cross-origin without a preflight, which blocks CSRF.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}

		reg.mu.RLock()
		mux := reg.mux
		reg.mu.RUnlock()
		mux.ServeHTTP(w, r)
	})
}

func (reg *Registry) logError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	reg.logger.Log(r.Context(), level, "component request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err),
	)
	http.Error(w, http.StatusText(status), status)
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := statusFor(err)
	http.Error(w, http.StatusText(status), status)
}

func statusFor(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsBadRequest(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
