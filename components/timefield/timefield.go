// Package timefield provides a single time-value spinner component: an
// hour, minute, second or meridian value with up and down controls and a
// free-text entry.
//
// The field keeps its value in signed props. Each action rebuilds an editor
// from those props, applies the interaction and reports the editor's
// notifications as HTMX events:
//
//	timefield:change  live value update (value-changed)
//	timefield:commit  value final for this interaction
//	timefield:input   echo of an owner-driven reset
//
// Every event carries {"id", "kind", "value"} as its detail.
package timefield

import (
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/pthm/hxtime"
	"github.com/pthm/hxtime/editor"
	"github.com/pthm/hxtime/lib/encoding"
	"github.com/pthm/hxtime/timerange"
)

// Event names announced through HX-Trigger.
const (
	EventChange = "timefield:change"
	EventCommit = "timefield:commit"
	EventEcho   = "timefield:input"
)

// DefaultAriaLabel is used when props carry no label.
const DefaultAriaLabel = "Time Item"

// Props is the state of one field.
type Props struct {
	ID          string
	Kind        timerange.Kind
	Value       string
	Placeholder string
	AriaLabel   string
}

// HXEncode implements hxtime.Encodable.
func (p Props) HXEncode() map[string]any {
	m := map[string]any{
		"id": p.ID,
		"k":  string(p.Kind),
		"v":  p.Value,
	}
	if p.Placeholder != "" {
		m["ph"] = p.Placeholder
	}
	if p.AriaLabel != "" {
		m["al"] = p.AriaLabel
	}
	return m
}

// HXDecode implements hxtime.Decodable.
func (p *Props) HXDecode(m map[string]any) error {
	p.ID = encoding.String(m, "id")
	p.Kind = timerange.Kind(encoding.String(m, "k"))
	p.Value = encoding.String(m, "v")
	p.Placeholder = encoding.String(m, "ph")
	p.AriaLabel = encoding.String(m, "al")
	return nil
}

// Option configures a Field.
type Option func(*Field)

// WithTable sets the range table the field's editors read.
func WithTable(t *timerange.Table) Option {
	return func(f *Field) {
		if t != nil {
			f.table = t
		}
	}
}

// WithIDGenerator overrides how DOM ids are assigned to fields without one.
func WithIDGenerator(gen func() string) Option {
	return func(f *Field) {
		if gen != nil {
			f.newID = gen
		}
	}
}

// Field is the time field component. One Field serves any number of
// rendered fields; per-field state lives in Props.
type Field struct {
	*hxtime.Component[Props]
	table *timerange.Table
	newID func() string
}

// New creates the component and registers its actions.
func New(opts ...Option) *Field {
	f := &Field{
		Component: hxtime.New[Props]("timefield"),
		table:     timerange.Default(),
		newID:     func() string { return "time-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(f)
	}

	f.Action("increment", f.handleIncrement)
	f.Action("decrement", f.handleDecrement)
	f.Action("input", f.handleInput)
	f.Action("reset", f.handleReset)
	return f
}

// Hydrate validates the kind, assigns a DOM id and sanitizes the value, so
// every render shows an in-range value or nothing.
func (f *Field) Hydrate(ctx context.Context, props *Props) error {
	kind, err := timerange.ParseKind(string(props.Kind))
	if err != nil {
		return fmt.Errorf("%w: %w", hxtime.ErrInvalidFormat, err)
	}
	props.Kind = kind
	if props.ID == "" {
		props.ID = f.newID()
	}
	if props.AriaLabel == "" {
		props.AriaLabel = DefaultAriaLabel
	}
	props.Value = editor.New(kind, props.Value, editor.WithTable(f.table)).Value()
	return nil
}

// Render produces the field markup.
func (f *Field) Render(ctx context.Context, props Props) templ.Component {
	target := Target(props.ID)
	return Item(ItemView{
		ID:          props.ID,
		Kind:        string(props.Kind),
		Value:       props.Value,
		Placeholder: props.Placeholder,
		AriaLabel:   props.AriaLabel,
		Up:          hxtime.Merge(f.Wire("increment", props), target),
		Down:        hxtime.Merge(f.Wire("decrement", props), target),
		Input: hxtime.Merge(f.Wire("input", props), target, templ.Attributes{
			"hx-trigger": "change",
		}),
	})
}

// HXServeHTTP implements hxtime.HXComponent.
func (f *Field) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.Serve(w, r, f)
}

func (f *Field) handleIncrement(ctx context.Context, props Props, r *http.Request) hxtime.Result[Props] {
	return f.run(props, (*editor.Editor).Increment)
}

func (f *Field) handleDecrement(ctx context.Context, props Props, r *http.Request) hxtime.Result[Props] {
	return f.run(props, (*editor.Editor).Decrement)
}

// handleInput accepts free-typed text. Numeric text is committed verbatim
// and then sanitized before the field re-renders.
func (f *Field) handleInput(ctx context.Context, props Props, r *http.Request) hxtime.Result[Props] {
	text := r.FormValue("value")
	return f.run(props, func(ed *editor.Editor) {
		ed.SetRawInput(text)
		ed.Sanitize()
	})
}

// handleReset re-seeds the field from an owner-held value.
func (f *Field) handleReset(ctx context.Context, props Props, r *http.Request) hxtime.Result[Props] {
	v := r.FormValue("value")
	return f.run(props, func(ed *editor.Editor) {
		ed.Reset(v)
	})
}

// run applies op to an editor seeded from props and converts the editor's
// notifications into events.
func (f *Field) run(props Props, op func(*editor.Editor)) hxtime.Result[Props] {
	var events []hxtime.Event
	record := func(name string) editor.Listener {
		return func(v string) {
			events = append(events, hxtime.Event{Name: name, Data: map[string]any{
				"id":    props.ID,
				"kind":  string(props.Kind),
				"value": v,
			}})
		}
	}

	ed := editor.New(props.Kind, props.Value,
		editor.WithTable(f.table),
		editor.OnChange(record(EventChange)),
		editor.OnCommit(record(EventCommit)),
		editor.OnEcho(record(EventEcho)),
	)
	op(ed)
	props.Value = ed.Value()

	result := hxtime.OK(props)
	for _, ev := range events {
		result = result.Trigger(ev.Name, ev.Data)
	}
	return result
}
