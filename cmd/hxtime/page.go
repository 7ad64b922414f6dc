package main

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/pthm/hxtime"
	"github.com/pthm/hxtime/components/timefield"
	"github.com/pthm/hxtime/components/timepicker"
	"github.com/pthm/hxtime/timerange"
)

const htmxScript = `<script src="https://unpkg.com/htmx.org@2.0.4"></script>`

type demoPage struct {
	field  *timefield.Field
	picker *timepicker.Picker
	cfg    DemoConfig
}

func (p *demoPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := hxtime.Render(w, r, p.layout()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (p *demoPage) layout() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>hxtime</title>`+htmxScript+`</head><body>`); err != nil {
			return err
		}
		if err := hxtime.ToastContainer().Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<h1>Time picker</h1><form>`); err != nil {
			return err
		}
		props := timepicker.Props{
			ID:      "demo-picker",
			Name:    "time",
			Clock:   timepicker.Clock(p.cfg.Clock),
			Seconds: p.cfg.Seconds,
		}
		if err := p.renderPicker(ctx, w, props); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `</form><h1>Fields</h1>`); err != nil {
			return err
		}
		for _, k := range timerange.Kinds() {
			fp := timefield.Props{ID: "demo-" + string(k), Kind: k, Placeholder: k.Label()}
			if err := p.field.Hydrate(ctx, &fp); err != nil {
				return err
			}
			if err := p.field.Render(ctx, fp).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// renderPicker seeds the picker from the configured value, if any.
func (p *demoPage) renderPicker(ctx context.Context, w io.Writer, props timepicker.Props) error {
	if p.cfg.Value != "" {
		props.SetTime(p.cfg.Value)
	}
	if err := p.picker.Hydrate(ctx, &props); err != nil {
		return err
	}
	return p.picker.Render(ctx, props).Render(ctx, w)
}
