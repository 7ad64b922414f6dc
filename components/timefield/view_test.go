package timefield

import (
	"bytes"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemAttributes(t *testing.T) {
	var buf bytes.Buffer
	err := Item(ItemView{
		ID:          "m",
		Kind:        "meridian",
		Value:       "pm",
		Placeholder: `<a "b">`,
		AriaLabel:   DefaultAriaLabel,
		Up:          templ.Attributes{"disabled": true, "hidden": false},
	}).Render(t.Context(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `<div aria-label="Time Item" class="hx-time__item" data-kind="meridian" id="m">`)
	assert.Contains(t, html, `<button aria-label="Increase" class="hx-time__action hx-time__action--up" disabled type="button">&#9650;</button>`)
	assert.Contains(t, html, `inputmode="text"`)
	assert.Contains(t, html, `placeholder="&lt;a &#34;b&#34;&gt;"`)
	assert.NotContains(t, html, "hidden")
}
