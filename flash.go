package hxtime

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Flash levels for toast notifications.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash is a one-time notification rendered as an out-of-band swap into
// the #toasts container.
type Flash struct {
	Level   string
	Message string
}

// RenderFlashesOOB renders flashes as a single OOB fragment appended after
// the component markup. Returns "" when there is nothing to show.
func RenderFlashesOOB(flashes []Flash) string {
	if len(flashes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div id="toasts" hx-swap-oob="beforeend">`)
	for _, f := range flashes {
		sb.WriteString(`<div class="toast toast-`)
		sb.WriteString(templ.EscapeString(f.Level))
		sb.WriteString(`" data-auto-dismiss="3000">`)
		sb.WriteString(templ.EscapeString(f.Message))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// ToastContainer renders the empty container flashes are swapped into.
// Place it once in the page layout.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="toasts" class="toast-container"></div>`)
		return err
	})
}
