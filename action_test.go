package hxtime

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/a-h/templ"
)

func TestWireAttrs(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		encoded string
		attr    string
		url     string
		vals    string
	}{
		{"get", http.MethodGet, "abc.def", "hx-get", "/_c/x/peek?p=abc.def", ""},
		{"empty method is get", "", "abc", "hx-get", "/_c/x/peek?p=abc", ""},
		{"get without props", http.MethodGet, "", "hx-get", "/_c/x/peek", ""},
		{"post", http.MethodPost, "abc", "hx-post", "/_c/x/peek", `{"p":"abc"}`},
		{"put", http.MethodPut, "abc", "hx-put", "/_c/x/peek", `{"p":"abc"}`},
		{"patch", http.MethodPatch, "abc", "hx-patch", "/_c/x/peek", `{"p":"abc"}`},
		{"delete", http.MethodDelete, "abc", "hx-delete", "/_c/x/peek", `{"p":"abc"}`},
		{"post without props", http.MethodPost, "", "hx-post", "/_c/x/peek", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := WireAttrs("/_c/x/peek", tt.method, tt.encoded)

			if got := attrs[tt.attr]; got != tt.url {
				t.Errorf("%s = %v, want %q", tt.attr, got, tt.url)
			}
			vals, has := attrs["hx-vals"]
			if tt.vals == "" {
				if has {
					t.Errorf("hx-vals = %v, want absent", vals)
				}
				return
			}
			if vals != tt.vals {
				t.Errorf("hx-vals = %v, want %q", vals, tt.vals)
			}
		})
	}
}

func TestWithVals(t *testing.T) {
	base := templ.Attributes{"hx-post": "/_c/x/step", "hx-vals": `{"p":"abc"}`}

	got := WithVals(base, map[string]string{"part": "hour", "dir": "up"})

	var vals map[string]string
	if err := json.Unmarshal([]byte(got["hx-vals"].(string)), &vals); err != nil {
		t.Fatalf("hx-vals is not JSON: %v", err)
	}
	want := map[string]string{"p": "abc", "part": "hour", "dir": "up"}
	for k, v := range want {
		if vals[k] != v {
			t.Errorf("hx-vals[%q] = %q, want %q", k, vals[k], v)
		}
	}
	if got["hx-post"] != "/_c/x/step" {
		t.Errorf("hx-post = %v", got["hx-post"])
	}
	if base["hx-vals"] != `{"p":"abc"}` {
		t.Errorf("WithVals modified its input: %v", base["hx-vals"])
	}
}

func TestWithValsWithoutExisting(t *testing.T) {
	got := WithVals(templ.Attributes{"hx-get": "/x"}, map[string]string{"dir": "down"})
	if got["hx-vals"] != `{"dir":"down"}` {
		t.Errorf("hx-vals = %v", got["hx-vals"])
	}
}

func TestActionBuilderMethod(t *testing.T) {
	c := New[counterProps]("builder")
	c.Action("save", nil).Method(http.MethodPut)
	c.Action("load", nil)

	if c.actions["save"].method != http.MethodPut {
		t.Errorf("save method = %q, want PUT", c.actions["save"].method)
	}
	if c.actions["load"].method != http.MethodPost {
		t.Errorf("load method = %q, want POST by default", c.actions["load"].method)
	}
	if _, ok := c.Wire("save", counterProps{})["hx-put"]; !ok {
		t.Errorf("Wire(save) should use hx-put")
	}
	if _, ok := c.Wire("missing", counterProps{})["hx-get"]; !ok {
		t.Errorf("Wire(missing) should fall back to hx-get")
	}
	if _, ok := c.Refresh(counterProps{})["hx-get"]; !ok {
		t.Errorf("Refresh() should use hx-get")
	}
}
