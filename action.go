package hxtime

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// ActionBuilder configures a registered action.
type ActionBuilder struct {
	method *string
}

// Method overrides the default POST method.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

// WireAttrs builds the HTMX attributes for a request to path.
//
// GET requests carry the encoded props in the query string; other methods
// send them as the "p" value through hx-vals. Targeting and swapping are
// left to the template.
func WireAttrs(path, method, encoded string) templ.Attributes {
	attrs := templ.Attributes{}

	switch method {
	case http.MethodGet, "":
		url := path
		if encoded != "" {
			url = path + "?p=" + encoded
		}
		attrs["hx-get"] = url
		return attrs
	case http.MethodPost:
		attrs["hx-post"] = path
	case http.MethodPut:
		attrs["hx-put"] = path
	case http.MethodPatch:
		attrs["hx-patch"] = path
	case http.MethodDelete:
		attrs["hx-delete"] = path
	}

	if encoded != "" {
		data, _ := json.Marshal(map[string]string{"p": encoded})
		attrs["hx-vals"] = string(data)
	}
	return attrs
}

// WithVals returns a copy of attrs whose hx-vals also carries vals. Existing
// keys, such as the encoded props, are kept unless vals overrides them.
func WithVals(attrs templ.Attributes, vals map[string]string) templ.Attributes {
	merged := map[string]string{}
	if s, ok := attrs["hx-vals"].(string); ok {
		_ = json.Unmarshal([]byte(s), &merged)
	}
	for k, v := range vals {
		merged[k] = v
	}

	out := make(templ.Attributes, len(attrs)+1)
	for k, v := range attrs {
		out[k] = v
	}
	data, _ := json.Marshal(merged)
	out["hx-vals"] = string(data)
	return out
}
