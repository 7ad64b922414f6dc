package hxtime

// SwapMode is an hx-swap strategy.
//
// See https://htmx.org/attributes/hx-swap/.
type SwapMode string

const (
	// SwapOuter replaces the whole target element. Time components swap
	// themselves this way after every step.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the target's contents.
	SwapInner SwapMode = "innerHTML"

	// SwapNone discards the response; events and OOB swaps still apply.
	SwapNone SwapMode = "none"
)

// Swap returns the hx-swap attribute value for mode, optionally with
// modifiers such as "focus-scroll:false".
func Swap(mode SwapMode, modifiers ...string) string {
	s := string(mode)
	for _, m := range modifiers {
		s += " " + m
	}
	return s
}
