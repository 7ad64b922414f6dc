package hxtime

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult holds the outcome of rendering a component or running an
// action in tests.
type TestResult struct {
	HTML        string
	StatusCode  int
	Headers     http.Header
	Events      []Event
	Flashes     []Flash
	RedirectURL string
}

// TestRender hydrates props and renders comp without any HTTP mechanics.
func TestRender[P any](comp Lifecycle[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext[P any](ctx context.Context, comp Lifecycle[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction sends an HTMX request to comp and records the response.
// formData is sent url-encoded; the HX-Request header is always set.
func TestAction(comp HXComponent, actionURL, method string, formData map[string]string) (*TestResult, error) {
	return NewTestRequest(method, actionURL).WithFormValues(formData).Execute(comp)
}

// TestGet runs a GET against comp.
func TestGet(comp HXComponent, url string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodGet, nil)
}

// TestPost runs a POST against comp.
func TestPost(comp HXComponent, url string, formData map[string]string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodPost, formData)
}

// TestRequestBuilder builds a request for Execute.
//
//	res, err := hxtime.NewTestRequest(http.MethodPost, url).
//	    WithFormData("value", "12").
//	    Execute(field)
type TestRequestBuilder struct {
	method   string
	url      string
	formData map[string]string
	headers  map[string]string
	ctx      context.Context
}

// NewTestRequest creates a new test request builder.
func NewTestRequest(method, url string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:   method,
		url:      url,
		formData: make(map[string]string),
		headers:  make(map[string]string),
		ctx:      context.Background(),
	}
}

// WithFormData adds a form value.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.formData[key] = value
	return b
}

// WithFormValues adds several form values.
func (b *TestRequestBuilder) WithFormValues(data map[string]string) *TestRequestBuilder {
	for k, v := range data {
		b.formData[k] = v
	}
	return b
}

// WithHeader sets a request header, overriding defaults.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// WithContext sets the request context.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Request returns the built request.
func (b *TestRequestBuilder) Request() *http.Request {
	form := url.Values{}
	for k, v := range b.formData {
		form.Set(k, v)
	}

	req := httptest.NewRequest(b.method, b.url, strings.NewReader(form.Encode()))
	req = req.WithContext(b.ctx)
	req.Header.Set("HX-Request", "true")
	if len(b.formData) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Execute serves the request with comp.
func (b *TestRequestBuilder) Execute(comp HXComponent) (*TestResult, error) {
	return record(comp.HXServeHTTP, b.Request())
}

// ExecuteHandler serves the request with an arbitrary handler, such as a
// Registry handler.
func (b *TestRequestBuilder) ExecuteHandler(h http.Handler) (*TestResult, error) {
	return record(h.ServeHTTP, b.Request())
}

func record(serve http.HandlerFunc, req *http.Request) (*TestResult, error) {
	rec := httptest.NewRecorder()
	serve(rec, req)

	result := &TestResult{
		HTML:        rec.Body.String(),
		StatusCode:  rec.Code,
		Headers:     rec.Header(),
		RedirectURL: rec.Header().Get("HX-Redirect"),
	}

	events, err := parseTriggerHeader(rec.Header().Get("HX-Trigger"))
	if err != nil {
		return nil, err
	}
	result.Events = events
	result.Flashes = parseFlashesFromHTML(result.HTML)
	return result, nil
}

// HTMLContains checks if the HTML contains substr.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains every substring.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent checks if an event with the exact name was triggered.
func (r *TestResult) HasEvent(name string) bool {
	_, ok := r.Event(name)
	return ok
}

// Event returns the triggered event with the given name.
func (r *TestResult) Event(name string) (Event, bool) {
	for _, e := range r.Events {
		if e.Name == name {
			return e, true
		}
	}
	return Event{}, false
}

// EventNames returns triggered event names in order.
func (r *TestResult) EventNames() []string {
	names := make([]string, len(r.Events))
	for i, e := range r.Events {
		names[i] = e.Name
	}
	return names
}

// HasFlash checks for a flash with the given level and message.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

// HasFlashLevel checks for any flash with the given level.
func (r *TestResult) HasFlashLevel(level string) bool {
	for _, f := range r.Flashes {
		if f.Level == level {
			return true
		}
	}
	return false
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// parseTriggerHeader parses an HX-Trigger value, keeping event order.
func parseTriggerHeader(trigger string) ([]Event, error) {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil, nil
	}

	if !strings.HasPrefix(trigger, "{") {
		var events []Event
		for _, p := range strings.Split(trigger, ",") {
			if p = strings.TrimSpace(p); p != "" {
				events = append(events, Event{Name: p})
			}
		}
		return events, nil
	}

	dec := json.NewDecoder(strings.NewReader(trigger))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var events []Event
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		ev := Event{Name: name}
		var data map[string]any
		if json.Unmarshal(raw, &data) == nil {
			ev.Data = data
		}
		events = append(events, ev)
	}
	return events, nil
}

// parseFlashesFromHTML extracts toasts written by RenderFlashesOOB.
func parseFlashesFromHTML(html string) []Flash {
	const prefix = `<div class="toast toast-`
	var flashes []Flash

	rest := html
	for {
		start := strings.Index(rest, prefix)
		if start == -1 {
			return flashes
		}
		rest = rest[start+len(prefix):]

		levelEnd := strings.IndexByte(rest, '"')
		tagEnd := strings.IndexByte(rest, '>')
		if levelEnd == -1 || tagEnd == -1 {
			return flashes
		}
		level := rest[:levelEnd]
		rest = rest[tagEnd+1:]

		end := strings.Index(rest, "</div>")
		if end == -1 {
			return flashes
		}
		flashes = append(flashes, Flash{Level: level, Message: unescape(rest[:end])})
		rest = rest[end:]
	}
}

var htmlUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&#34;", `"`, "&#39;", "'", "&amp;", "&")

func unescape(s string) string {
	return htmlUnescaper.Replace(s)
}
