package timepicker

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/hxtime"
	"github.com/pthm/hxtime/components/timefield"
)

var partLabels = map[Part]string{
	PartHour:     "Hours",
	PartMinute:   "Minutes",
	PartSecond:   "Seconds",
	PartMeridian: "AM/PM",
}

var partPlaceholders = map[Part]string{
	PartHour:     "hh",
	PartMinute:   "mm",
	PartSecond:   "ss",
	PartMeridian: "am",
}

func pickerView(c *Picker, props Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := Format(props)
		target := timefield.Target(props.ID)

		if _, err := io.WriteString(w, "<div"); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, templ.Attributes{
			"id":         props.ID,
			"class":      "hx-time",
			"role":       "group",
			"aria-label": "Time picker",
			"data-time":  t,
		}); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}

		if props.Name != "" {
			if _, err := io.WriteString(w, "<input"); err != nil {
				return err
			}
			if err := templ.RenderAttributes(ctx, w, templ.Attributes{
				"type":  "hidden",
				"name":  props.Name,
				"value": t,
			}); err != nil {
				return err
			}
			if _, err := io.WriteString(w, ">"); err != nil {
				return err
			}
		}

		step := c.Wire("step", props)
		input := c.Wire("input", props)
		for i, part := range props.Parts() {
			if i > 0 && part != PartMeridian {
				if _, err := io.WriteString(w, `<span class="hx-time__separator">:</span>`); err != nil {
					return err
				}
			}
			kind, _ := props.KindOf(part)
			item := timefield.Item(timefield.ItemView{
				ID:          props.ID + "-" + string(part),
				Kind:        string(kind),
				Value:       props.Value(part),
				Placeholder: partPlaceholders[part],
				AriaLabel:   partLabels[part],
				Up:          hxtime.Merge(hxtime.WithVals(step, map[string]string{"part": string(part), "dir": "up"}), target),
				Down:        hxtime.Merge(hxtime.WithVals(step, map[string]string{"part": string(part), "dir": "down"}), target),
				Input: hxtime.Merge(hxtime.WithVals(input, map[string]string{"part": string(part)}), target, templ.Attributes{
					"hx-trigger": "change",
				}),
			})
			if err := item.Render(ctx, w); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "<button"); err != nil {
			return err
		}
		apply := hxtime.Merge(c.Wire("apply", props), target, templ.Attributes{
			"type":  "button",
			"class": "hx-time__apply",
		})
		if err := templ.RenderAttributes(ctx, w, apply); err != nil {
			return err
		}
		_, err := io.WriteString(w, ">Set</button></div>")
		return err
	})
}
