package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxtime"
	"github.com/pthm/hxtime/components/timefield"
	"github.com/pthm/hxtime/internal/logger"
	"github.com/pthm/hxtime/timerange"
)

func newTestApp(t *testing.T, mutate func(*Config)) *app {
	t.Helper()
	cfg := defaultConfig()
	cfg.Key = "serve-test-key"
	if mutate != nil {
		mutate(&cfg)
	}
	a, err := newApp(cfg, logger.NewNope())
	require.NoError(t, err)
	return a
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDemoPage(t *testing.T) {
	a := newTestApp(t, func(c *Config) {
		c.Demo = DemoConfig{Clock: "12h", Value: "09:15 PM"}
	})

	rec := get(t, a.router, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `id="toasts"`)
	assert.Contains(t, body, `id="demo-picker"`)
	assert.Contains(t, body, `data-time="09:15 pm"`)
	for _, k := range timerange.Kinds() {
		assert.Contains(t, body, `id="demo-`+string(k)+`"`)
	}
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t, nil)
	rec := get(t, a.router, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestComponentRoundTrip(t *testing.T) {
	a := newTestApp(t, nil)
	props := timefield.Props{ID: "f", Kind: timerange.Hour24, Value: "23"}

	res, err := hxtime.NewTestRequest(http.MethodPost, a.field.URL("increment", props)).
		ExecuteHandler(a.router)
	require.NoError(t, err)
	require.True(t, res.IsOK(), res.HTML)
	assert.Equal(t, []string{timefield.EventChange, timefield.EventCommit}, res.EventNames())
	assert.True(t, res.HTMLContains(`value="00"`), res.HTML)

	metrics := get(t, a.router, "/metrics")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(),
		`hxtime_component_requests_total{action="increment",code="200",component="timefield"} 1`)
}

func TestComponentRequiresHTMXHeader(t *testing.T) {
	a := newTestApp(t, nil)
	url := a.field.URL("increment", timefield.Props{Kind: timerange.Minute})

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, url, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetricsDisabled(t *testing.T) {
	a := newTestApp(t, func(c *Config) { c.Metrics = false })
	assert.Equal(t, http.StatusNotFound, get(t, a.router, "/metrics").Code)
}

func TestTracingEnabled(t *testing.T) {
	a := newTestApp(t, func(c *Config) { c.Tracing = true })
	props := timefield.Props{ID: "f", Kind: timerange.Meridian, Value: "am"}

	res, err := hxtime.NewTestRequest(http.MethodPost, a.field.URL("increment", props)).
		ExecuteHandler(a.router)
	require.NoError(t, err)
	assert.True(t, res.HTMLContains(`value="pm"`), res.HTML)
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, version+"\n", out.String())

	cmd = versionCmd()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Go version:")
}
