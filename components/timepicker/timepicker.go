// Package timepicker composes several time editors (hour, minute, optional
// second, and meridian on 12-hour clocks) into one picker and aggregates
// their commits into a single time value.
//
// Events carry {"id", "part", "value", "parts", "time"}, where parts maps
// every shown part to its value and time is the aggregate from Format (""
// while incomplete):
//
//	timepicker:change  a part's value changed
//	timepicker:commit  a part's value was committed
//	timepicker:input   a part was re-seeded from outside the editor
//	timepicker:apply   the user confirmed a complete time
//
// HX-Trigger is keyed by name, so when one request touches several parts
// (set) part and value name the last one; read parts for the rest.
package timepicker

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
	EventChange = "timepicker:change"
	EventCommit = "timepicker:commit"
	EventInput  = "timepicker:input"
	EventApply  = "timepicker:apply"
)

// Props is the state of one picker.
type Props struct {
	ID       string
	Name     string // form field name of the hidden aggregate input
	Clock    Clock
	Seconds  bool
	Hour     string
	Minute   string
	Second   string
	Meridian string
}

// HXEncode implements hxtime.Encodable.
func (p Props) HXEncode() map[string]any {
	m := map[string]any{
		"id": p.ID,
		"c":  string(p.Clock),
		"h":  p.Hour,
		"m":  p.Minute,
	}
	if p.Name != "" {
		m["n"] = p.Name
	}
	if p.Seconds {
		m["sec"] = true
		m["s"] = p.Second
	}
	if p.Meridian != "" {
		m["mer"] = p.Meridian
	}
	return m
}

// HXDecode implements hxtime.Decodable.
func (p *Props) HXDecode(m map[string]any) error {
	p.ID = encoding.String(m, "id")
	p.Name = encoding.String(m, "n")
	p.Clock = Clock(encoding.String(m, "c"))
	p.Seconds = encoding.Bool(m, "sec")
	p.Hour = encoding.String(m, "h")
	p.Minute = encoding.String(m, "m")
	p.Second = encoding.String(m, "s")
	p.Meridian = encoding.String(m, "mer")
	return nil
}

// Option configures a Picker.
type Option func(*Picker)

// WithTable sets the range table the picker's editors read.
func WithTable(t *timerange.Table) Option {
	return func(c *Picker) {
		if t != nil {
			c.table = t
		}
	}
}

// WithIDGenerator overrides how DOM ids are assigned.
func WithIDGenerator(gen func() string) Option {
	return func(c *Picker) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// Picker is the time picker component.
type Picker struct {
	*hxtime.Component[Props]
	table *timerange.Table
	newID func() string
}

// New creates the component and registers its actions.
func New(opts ...Option) *Picker {
	c := &Picker{
		Component: hxtime.New[Props]("timepicker"),
		table:     timerange.Default(),
		newID:     func() string { return "picker-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Action("step", c.handleStep)
	c.Action("input", c.handleInput)
	c.Action("set", c.handleSet)
	c.Action("apply", c.handleApply)
	return c
}

// Hydrate normalizes the clock, assigns an id and sanitizes every shown
// part. Hidden parts are cleared.
func (c *Picker) Hydrate(ctx context.Context, props *Props) error {
	switch props.Clock {
	case Clock24, Clock12:
	case "":
		props.Clock = Clock24
	default:
		return fmt.Errorf("%w: clock %q", hxtime.ErrInvalidFormat, props.Clock)
	}
	if props.ID == "" {
		props.ID = c.newID()
	}

	for _, part := range []Part{PartHour, PartMinute, PartSecond, PartMeridian} {
		kind, shown := props.KindOf(part)
		if !shown {
			props.set(part, "")
			continue
		}
		props.set(part, editor.New(kind, props.Value(part), editor.WithTable(c.table)).Value())
	}
	return nil
}

// Render produces the picker markup.
func (c *Picker) Render(ctx context.Context, props Props) templ.Component {
	return pickerView(c, props)
}

// HXServeHTTP implements hxtime.HXComponent.
func (c *Picker) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Serve(w, r, c)
}

func (c *Picker) handleStep(ctx context.Context, props Props, r *http.Request) hxtime.Result[Props] {
	part := Part(r.FormValue("part"))
	if _, ok := props.KindOf(part); !ok {
		return hxtime.Err(props, fmt.Errorf("%w: part %q", hxtime.ErrInvalidFormat, part))
	}
	down := r.FormValue("dir") == "down"
	return c.run(props, func(p Part, ed *editor.Editor) {
		if p != part {
			return
		}
		if down {
			ed.Decrement()
		} else {
			ed.Increment()
		}
	})
}

func (c *Picker) handleInput(ctx context.Context, props Props, r *http.Request) hxtime.Result[Props] {
	part := Part(r.FormValue("part"))
	if _, ok := props.KindOf(part); !ok {
		return hxtime.Err(props, fmt.Errorf("%w: part %q", hxtime.ErrInvalidFormat, part))
	}
	text := r.FormValue("value")
	return c.run(props, func(p Part, ed *editor.Editor) {
		if p != part {
			return
		}
		ed.SetRawInput(text)
		ed.Sanitize()
	})
}

// handleSet re-seeds every part from a full time string.
func (c *Picker) handleSet(ctx context.Context, props Props, r *http.Request) hxtime.Result[Props] {
	values := splitTime(r.FormValue("value"))
	return c.run(props, func(p Part, ed *editor.Editor) {
		ed.Reset(values[p])
	})
}

func (c *Picker) handleApply(ctx context.Context, props Props, r *http.Request) hxtime.Result[Props] {
	t := Format(props)
	if t == "" {
		return hxtime.OK(props).Flash(hxtime.FlashWarning, "Enter a complete time")
	}
	return hxtime.OK(props).
		Trigger(EventApply, map[string]any{"id": props.ID, "time": t}).
		Flash(hxtime.FlashSuccess, "Time set to "+t)
}

// run builds an editor per shown part, lets op act on each, stores the
// results and reports each notification with the part values and aggregate
// time after op.
func (c *Picker) run(props Props, op func(Part, *editor.Editor)) hxtime.Result[Props] {
	type note struct {
		event string
		part  Part
		value string
	}
	var notes []note

	for _, part := range props.Parts() {
		kind, _ := props.KindOf(part)
		p := part
		record := func(event string) func(string) {
			return func(v string) { notes = append(notes, note{event, p, v}) }
		}
		ed := editor.New(kind, props.Value(part),
			editor.WithTable(c.table),
			editor.OnChange(record(EventChange)),
			editor.OnCommit(record(EventCommit)),
			editor.OnEcho(record(EventInput)),
		)
		op(part, ed)
		props.set(part, ed.Value())
	}

	result := hxtime.OK(props)
	t := Format(props)
	parts := make(map[string]string, len(props.Parts()))
	for _, part := range props.Parts() {
		parts[string(part)] = props.Value(part)
	}
	for _, n := range notes {
		result = result.Trigger(n.event, map[string]any{
			"id":    props.ID,
			"part":  string(n.part),
			"value": n.value,
			"parts": parts,
			"time":  t,
		})
	}
	return result
}
