// Package editor implements a bounded cyclic value editor: a single hour,
// minute, second or meridian value that can be stepped with wrap-around or
// replaced by free-typed text, and that always converges to an in-range value
// or the empty string.
//
// Invalid input never produces an error. It degrades to the empty value, and
// callers that care observe it through the change notifications.
//
//	ed := editor.New(timerange.Hour24, "23", editor.OnChange(func(v string) {
//	    log.Println("now", v)
//	}))
//	ed.Increment() // "00"
//
// An Editor is owned by a single goroutine; it has no internal locking.
package editor

import (
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pthm/hxtime/timerange"
)

// State is the conceptual state of an editor.
type State int

const (
	// Empty means the value is unset or was rejected.
	Empty State = iota
	// Valid means the value is inside the kind's bounds.
	Valid
)

func (s State) String() string {
	if s == Valid {
		return "valid"
	}
	return "empty"
}

// Listener receives a value notification.
type Listener func(value string)

// Option configures an Editor.
type Option func(*Editor)

// WithTable makes the editor read bounds from t instead of the default table.
func WithTable(t *timerange.Table) Option {
	return func(e *Editor) {
		if t != nil {
			e.table = t
		}
	}
}

// OnChange registers a listener for value-changed notifications, the live
// update of a bound value.
func OnChange(fn Listener) Option {
	return func(e *Editor) { e.onChange = append(e.onChange, fn) }
}

// OnCommit registers a listener for commit notifications, fired when the
// value is final for the current interaction.
func OnCommit(fn Listener) Option {
	return func(e *Editor) { e.onCommit = append(e.onCommit, fn) }
}

// OnEcho registers a listener for input-echo notifications, fired by Reset
// to hand the sanitized value back to the owner's binding.
func OnEcho(fn Listener) Option {
	return func(e *Editor) { e.onEcho = append(e.onEcho, fn) }
}

// Editor holds one bounded value of a fixed kind.
type Editor struct {
	kind    timerange.Kind
	table   *timerange.Table
	current string

	onChange []Listener
	onCommit []Listener
	onEcho   []Listener
}

// New creates an editor for kind seeded with initial. initial may be a string
// or any Go number; anything outside the kind's bounds becomes "".
// No notifications fire during construction.
func New(kind timerange.Kind, initial any, opts ...Option) *Editor {
	e := &Editor{
		kind:  kind,
		table: timerange.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.current = e.sanitized(Raw(initial))
	return e
}

// Kind returns the kind the editor governs.
func (e *Editor) Kind() timerange.Kind {
	return e.kind
}

// Bounds returns the bounds of the editor's kind.
func (e *Editor) Bounds() timerange.Bounds {
	return e.table.BoundsFor(e.kind)
}

// Value returns the current value.
func (e *Editor) Value() string {
	return e.current
}

// State reports whether the editor holds a value.
func (e *Editor) State() State {
	if e.current == "" {
		return Empty
	}
	return Valid
}

// Increment steps the value up, wrapping from max to min. An empty or
// unparsable numeric value steps to min, not min+1. Meridian toggles.
func (e *Editor) Increment() {
	b := e.Bounds()
	var next string
	if timerange.IsNumeric(e.kind) {
		next = b.Min
		if n, ok := parseNumber(e.current); ok {
			if n+1 <= mustNumber(b.Max) {
				next = pad(n + 1)
			}
		}
	} else {
		next = e.toggle(b)
	}
	e.step(next)
}

// Decrement steps the value down, wrapping from min to max. An empty or
// unparsable numeric value steps to min, the same as Increment. Meridian
// toggles.
func (e *Editor) Decrement() {
	b := e.Bounds()
	var next string
	if timerange.IsNumeric(e.kind) {
		next = b.Min
		if n, ok := parseNumber(e.current); ok {
			lo, hi := mustNumber(b.Min), mustNumber(b.Max)
			prev := hi
			if n > lo {
				prev = n - 1
			}
			if prev >= lo && prev <= hi {
				next = pad(prev)
			}
		}
	} else {
		next = e.toggle(b)
	}
	e.step(next)
}

// SetRawInput replaces the value with free-typed text. Meridian text is
// validated immediately; numeric text is kept verbatim until the next
// Sanitize. Emits commit with the stored value.
func (e *Editor) SetRawInput(text string) {
	if timerange.IsNumeric(e.kind) {
		e.current = text
	} else {
		e.current = e.sanitized(text)
	}
	e.emit(e.onCommit, e.current)
}

// Sanitize replaces an out-of-range or malformed value with "". In-range
// values are left untouched. Emits value-changed only when the value
// changed, so repeated calls are silent.
func (e *Editor) Sanitize() {
	next := e.sanitized(e.current)
	if next == e.current {
		return
	}
	e.current = next
	e.emit(e.onChange, next)
}

// Reset re-seeds the editor from an owner-held value, as when a bound field
// changes outside the editor. Emits value-changed if sanitizing altered the
// seed, then input-echo with the resulting value.
func (e *Editor) Reset(v any) {
	seed := Raw(v)
	e.current = seed
	e.Sanitize()
	e.emit(e.onEcho, e.current)
}

func (e *Editor) step(next string) {
	e.current = next
	e.emit(e.onChange, next)
	e.emit(e.onCommit, next)
}

func (e *Editor) toggle(b timerange.Bounds) string {
	if lower(e.current) == b.Min {
		return b.Max
	}
	return b.Min
}

func (e *Editor) sanitized(v string) string {
	b := e.Bounds()
	if !timerange.IsNumeric(e.kind) {
		token := lower(v)
		if b.Contains(token) {
			return token
		}
		return ""
	}
	n, ok := parseNumber(v)
	if !ok || n < mustNumber(b.Min) || n > mustNumber(b.Max) {
		return ""
	}
	return v
}

func (e *Editor) emit(listeners []Listener, v string) {
	for _, fn := range listeners {
		fn(v)
	}
}

// Raw converts an owner-supplied value to the editor's string form.
// Numbers use their shortest decimal representation; nil is "".
func Raw(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", x)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// parseNumber accepts only unsigned decimal digits.
func parseNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// mustNumber parses a bound. Tables hold canonical bounds, so a failure
// means a token kind reached a numeric path; -1 keeps comparisons false.
func mustNumber(s string) int {
	n, ok := parseNumber(s)
	if !ok {
		return -1
	}
	return n
}

func pad(n int) string {
	return fmt.Sprintf("%02d", n)
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
