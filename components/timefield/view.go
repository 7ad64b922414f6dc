package timefield

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/hxtime"
)

// ItemView describes one spinner: an up control, a text entry and a down
// control. The attribute sets carry the HTMX wiring.
type ItemView struct {
	ID          string
	Kind        string
	Value       string
	Placeholder string
	AriaLabel   string
	Up          templ.Attributes
	Input       templ.Attributes
	Down        templ.Attributes
}

// Item renders v. Other components reuse it to lay out their own editors.
func Item(v ItemView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := templ.Attributes{
			"class":      "hx-time__item",
			"data-kind":  v.Kind,
			"aria-label": v.AriaLabel,
		}
		if v.ID != "" {
			open["id"] = v.ID
		}
		if err := tag(ctx, w, "div", open); err != nil {
			return err
		}

		up := hxtime.Merge(templ.Attributes{
			"type":       "button",
			"class":      "hx-time__action hx-time__action--up",
			"aria-label": "Increase",
		}, v.Up)
		if err := element(ctx, w, "button", up, "&#9650;"); err != nil {
			return err
		}

		input := hxtime.Merge(templ.Attributes{
			"type":         "text",
			"class":        "hx-time__input",
			"name":         "value",
			"inputmode":    "numeric",
			"autocomplete": "off",
			"value":        v.Value,
			"placeholder":  v.Placeholder,
		}, v.Input)
		if v.Kind == "meridian" {
			input["inputmode"] = "text"
		}
		if err := tag(ctx, w, "input", input); err != nil {
			return err
		}

		down := hxtime.Merge(templ.Attributes{
			"type":       "button",
			"class":      "hx-time__action hx-time__action--down",
			"aria-label": "Decrease",
		}, v.Down)
		if err := element(ctx, w, "button", down, "&#9660;"); err != nil {
			return err
		}

		_, err := io.WriteString(w, "</div>")
		return err
	})
}

// Target returns attributes that swap the element with the given id.
func Target(id string) templ.Attributes {
	return templ.Attributes{
		"hx-target": "#" + id,
		"hx-swap":   hxtime.Swap(hxtime.SwapOuter),
	}
}

func tag(ctx context.Context, w io.Writer, name string, attrs templ.Attributes) error {
	if _, err := io.WriteString(w, "<"+name); err != nil {
		return err
	}
	if err := templ.RenderAttributes(ctx, w, attrs); err != nil {
		return err
	}
	_, err := io.WriteString(w, ">")
	return err
}

// element writes a tag with trusted inner markup.
func element(ctx context.Context, w io.Writer, name string, attrs templ.Attributes, inner string) error {
	if err := tag(ctx, w, name, attrs); err != nil {
		return err
	}
	_, err := io.WriteString(w, inner+"</"+name+">")
	return err
}
