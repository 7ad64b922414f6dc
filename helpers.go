package hxtime

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// Render writes a templ component as an HTML response.
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// TriggerName returns the name attribute of the element that triggered the
// request, or "".
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// TargetID returns the id of the element that will receive the response.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// BuildTriggerHeader builds an HX-Trigger value for events.
//
// Events without data produce a comma separated list of names. If any event
// carries data the value is a JSON object whose keys keep the event order,
// since HTMX dispatches them in key order:
//
//	timefield:change, timefield:commit
//	{"timefield:change":{"value":"05"},"timefield:commit":{"value":"05"}}
func BuildTriggerHeader(events []Event) string {
	if len(events) == 0 {
		return ""
	}

	withData := false
	for _, ev := range events {
		if ev.Data != nil {
			withData = true
			break
		}
	}

	if !withData {
		names := make([]string, len(events))
		for i, ev := range events {
			names[i] = ev.Name
		}
		return strings.Join(names, ", ")
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for i, ev := range events {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, _ := json.Marshal(ev.Name)
		sb.Write(key)
		sb.WriteByte(':')
		if ev.Data == nil {
			sb.WriteString("true")
			continue
		}
		data, err := json.Marshal(ev.Data)
		if err != nil {
			sb.WriteString("true")
			continue
		}
		sb.Write(data)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Merge combines attribute sets; later sets win on key conflicts.
func Merge(sets ...templ.Attributes) templ.Attributes {
	out := templ.Attributes{}
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}
