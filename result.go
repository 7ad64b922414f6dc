package hxtime

// Event is a client-side event announced through the HX-Trigger header.
// Data, when present, becomes the event's detail object.
type Event struct {
	Name string
	Data map[string]any
}

// Result is returned from action handlers to control rendering and side
// effects.
//
//	return hxtime.OK(props).
//	    Trigger("timefield:change", map[string]any{"value": v}).
//	    Trigger("timefield:commit", map[string]any{"value": v})
//
// Events fire on the client in the order they were added.
type Result[P any] struct {
	props    P
	err      error
	redirect string
	flashes  []Flash
	events   []Event
	headers  map[string]string
	status   int
	skip     bool
}

// OK creates a success result rendered with props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err creates a result that routes err to the registry's error handler.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Skip marks that the handler wrote its own response.
func Skip[P any]() Result[P] {
	return Result[P]{skip: true}
}

// Redirect asks the client to navigate via HX-Redirect.
func Redirect[P any](url string) Result[P] {
	return Result[P]{redirect: url}
}

// Flash appends a toast notification.
func (r Result[P]) Flash(level, message string) Result[P] {
	r.flashes = append(r.flashes, Flash{Level: level, Message: message})
	return r
}

// Trigger appends an event. A repeated name replaces the earlier data but
// keeps its position.
func (r Result[P]) Trigger(name string, data ...map[string]any) Result[P] {
	ev := Event{Name: name}
	if len(data) > 0 {
		ev.Data = data[0]
	}
	events := make([]Event, 0, len(r.events)+1)
	replaced := false
	for _, e := range r.events {
		if e.Name == name {
			events = append(events, ev)
			replaced = true
			continue
		}
		events = append(events, e)
	}
	if !replaced {
		events = append(events, ev)
	}
	r.events = events
	return r
}

// Header sets a response header.
func (r Result[P]) Header(key, value string) Result[P] {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers[key] = value
	r.headers = headers
	return r
}

// Status sets the HTTP status code. Zero means 200.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

// GetProps returns the props from the result.
func (r Result[P]) GetProps() P {
	return r.props
}

// GetErr returns the error from the result.
func (r Result[P]) GetErr() error {
	return r.err
}

// GetRedirect returns the redirect URL.
func (r Result[P]) GetRedirect() string {
	return r.redirect
}

// GetFlashes returns the flash messages.
func (r Result[P]) GetFlashes() []Flash {
	return r.flashes
}

// GetEvents returns the triggered events in order.
func (r Result[P]) GetEvents() []Event {
	return r.events
}

// GetHeaders returns the response headers.
func (r Result[P]) GetHeaders() map[string]string {
	return r.headers
}

// GetStatus returns the HTTP status code.
func (r Result[P]) GetStatus() int {
	return r.status
}

// ShouldSkip returns whether the handler wrote its own response.
func (r Result[P]) ShouldSkip() bool {
	return r.skip
}
