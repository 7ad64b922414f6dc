// Package hxtime serves time-entry widgets (hour, minute, second and
// meridian spinners, and pickers composed of them) as server-rendered HTMX
// components.
//
// # Components
//
// A component embeds *Component[P], where P is a small props type that
// travels in the URL between requests:
//
//	type Field struct {
//	    *hxtime.Component[Props]
//	}
//
// The lifecycle is two methods:
//   - Hydrate(ctx, *P) validates and completes decoded props
//   - Render(ctx, P) produces the templ.Component output
//
// Actions are registered by name and dispatched by Component.Serve:
//
//	f.Action("increment", f.handleIncrement)
//	f.Action("input", f.handleInput)
//
// Templates obtain the HTMX attributes for an action with Wire:
//
//	f.Wire("increment", props) // hx-post + hx-vals carrying signed props
//
// # State and security
//
// Props are encoded with lib/encoding: signed by default (visible,
// tamper-proof), encrypted when the component is marked Sensitive. Mutating
// requests must carry HX-Request: true, which the Registry enforces.
//
// # Events
//
// Handlers report editor notifications as HX-Trigger events through
// Result.Trigger. Events keep their order, so a step reports the live
// change before the commit:
//
//	return hxtime.OK(props).
//	    Trigger("timefield:change", data).
//	    Trigger("timefield:commit", data)
//
// # Registration
//
//	reg, err := hxtime.NewRegistry(key, hxtime.WithLogger(log))
//	reg.Add(timefield.New(), timepicker.New())
//	mux.Handle("/_c/", reg.Handler())
package hxtime
