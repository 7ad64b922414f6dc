package editor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxtime/timerange"
)

// recorder captures notifications in firing order.
type recorder struct {
	events []string
}

func (r *recorder) options() []Option {
	return []Option{
		OnChange(func(v string) { r.events = append(r.events, "change:"+v) }),
		OnCommit(func(v string) { r.events = append(r.events, "commit:"+v) }),
		OnEcho(func(v string) { r.events = append(r.events, "echo:"+v) }),
	}
}

func newRecorded(kind timerange.Kind, initial any) (*Editor, *recorder) {
	rec := &recorder{}
	return New(kind, initial, rec.options()...), rec
}

func TestNew_Sanitizes(t *testing.T) {
	tests := []struct {
		name    string
		kind    timerange.Kind
		initial any
		want    string
	}{
		{"in range string", timerange.Hour24, "23", "23"},
		{"out of range string", timerange.Hour24, "24", ""},
		{"unpadded kept as is", timerange.Minute, "5", "5"},
		{"int", timerange.Second, 42, "42"},
		{"int out of range", timerange.Second, 60, ""},
		{"float with fraction", timerange.Minute, 1.5, ""},
		{"negative", timerange.Minute, -1, ""},
		{"nil", timerange.Hour12, nil, ""},
		{"garbage", timerange.Hour12, "ab", ""},
		{"meridian upper", timerange.Meridian, "PM", "pm"},
		{"meridian unknown", timerange.Meridian, "noon", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, rec := newRecorded(tt.kind, tt.initial)
			assert.Equal(t, tt.want, ed.Value())
			assert.Empty(t, rec.events, "construction must not notify")
		})
	}
}

func TestIncrement(t *testing.T) {
	tests := []struct {
		kind    timerange.Kind
		current string
		want    string
	}{
		{timerange.Hour24, "23", "00"},
		{timerange.Hour24, "09", "10"},
		{timerange.Hour12, "11", "00"},
		{timerange.Minute, "59", "00"},
		{timerange.Minute, "xx", "00"},
		{timerange.Minute, "", "00"},
		{timerange.Second, "7", "08"},
		{timerange.Meridian, "am", "pm"},
		{timerange.Meridian, "pm", "am"},
		{timerange.Meridian, "", "am"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%q", tt.kind, tt.current), func(t *testing.T) {
			ed, rec := newRecorded(tt.kind, "")
			ed.current = tt.current

			ed.Increment()

			assert.Equal(t, tt.want, ed.Value())
			assert.Equal(t, []string{"change:" + tt.want, "commit:" + tt.want}, rec.events)
		})
	}
}

func TestDecrement(t *testing.T) {
	tests := []struct {
		kind    timerange.Kind
		current string
		want    string
	}{
		{timerange.Hour24, "00", "23"},
		{timerange.Hour24, "10", "09"},
		{timerange.Hour12, "00", "11"},
		{timerange.Second, "00", "59"},
		{timerange.Minute, "xx", "00"},
		{timerange.Minute, "", "00"},
		{timerange.Minute, "99", "00"},
		{timerange.Meridian, "am", "pm"},
		{timerange.Meridian, "pm", "am"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%q", tt.kind, tt.current), func(t *testing.T) {
			ed, rec := newRecorded(tt.kind, "")
			ed.current = tt.current

			ed.Decrement()

			assert.Equal(t, tt.want, ed.Value())
			assert.Equal(t, []string{"change:" + tt.want, "commit:" + tt.want}, rec.events)
		})
	}
}

func TestStepRangeClosure(t *testing.T) {
	for _, kind := range []timerange.Kind{timerange.Hour24, timerange.Hour12, timerange.Minute, timerange.Second} {
		b := timerange.BoundsFor(kind)
		lo, hi := mustNumber(b.Min), mustNumber(b.Max)
		for n := lo; n <= hi; n++ {
			start := pad(n)

			up := New(kind, start)
			up.Increment()
			v, ok := parseNumber(up.Value())
			require.True(t, ok, "%s: increment from %s", kind, start)
			assert.True(t, v >= lo && v <= hi, "%s: increment from %s gave %s", kind, start, up.Value())
			assert.Len(t, up.Value(), 2)

			down := New(kind, start)
			down.Decrement()
			v, ok = parseNumber(down.Value())
			require.True(t, ok, "%s: decrement from %s", kind, start)
			assert.True(t, v >= lo && v <= hi, "%s: decrement from %s gave %s", kind, start, down.Value())
			assert.Len(t, down.Value(), 2)
		}
	}
}

func TestMeridianToggleIsDirectionless(t *testing.T) {
	ed := New(timerange.Meridian, "am")
	ed.Increment()
	assert.Equal(t, "pm", ed.Value())
	ed.Increment()
	assert.Equal(t, "am", ed.Value())
	ed.Decrement()
	assert.Equal(t, "pm", ed.Value())
}

func TestMeridianToggleIgnoresCase(t *testing.T) {
	ed := New(timerange.Meridian, "")
	ed.current = "AM"
	ed.Increment()
	assert.Equal(t, "pm", ed.Value())
}

func TestSetRawInput_NumericDefersSanitize(t *testing.T) {
	ed, rec := newRecorded(timerange.Second, "10")

	ed.SetRawInput("99")
	assert.Equal(t, "99", ed.Value())
	assert.Equal(t, []string{"commit:99"}, rec.events)

	ed.Sanitize()
	assert.Equal(t, "", ed.Value())
	assert.Equal(t, Empty, ed.State())
	assert.Equal(t, []string{"commit:99", "change:"}, rec.events)
}

func TestSetRawInput_NumericInRange(t *testing.T) {
	ed, rec := newRecorded(timerange.Hour24, "")

	ed.SetRawInput("17")
	ed.Sanitize()

	assert.Equal(t, "17", ed.Value())
	assert.Equal(t, Valid, ed.State())
	assert.Equal(t, []string{"commit:17"}, rec.events)
}

func TestSetRawInput_Meridian(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"PM", "pm"},
		{"am", "am"},
		{"Am", "am"},
		{"xy", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ed, rec := newRecorded(timerange.Meridian, "am")

			ed.SetRawInput(tt.text)

			assert.Equal(t, tt.want, ed.Value())
			assert.Equal(t, []string{"commit:" + tt.want}, rec.events)
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"", "5", "05", "60", "-3", "1e1", " 7", "ab"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			ed, rec := newRecorded(timerange.Minute, "")
			ed.current = in

			ed.Sanitize()
			first := ed.Value()
			n := len(rec.events)

			ed.Sanitize()
			assert.Equal(t, first, ed.Value())
			assert.Len(t, rec.events, n, "second pass must not notify")
		})
	}
}

func TestSanitize_MeridianLowercases(t *testing.T) {
	ed, rec := newRecorded(timerange.Meridian, "")
	ed.current = "PM"

	ed.Sanitize()

	assert.Equal(t, "pm", ed.Value())
	assert.Equal(t, []string{"change:pm"}, rec.events)
}

func TestReset(t *testing.T) {
	t.Run("valid seed", func(t *testing.T) {
		ed, rec := newRecorded(timerange.Hour12, "03")
		ed.Reset("07")
		assert.Equal(t, "07", ed.Value())
		assert.Equal(t, []string{"echo:07"}, rec.events)
	})

	t.Run("invalid seed", func(t *testing.T) {
		ed, rec := newRecorded(timerange.Hour12, "03")
		ed.Reset("13")
		assert.Equal(t, "", ed.Value())
		assert.Equal(t, []string{"change:", "echo:"}, rec.events)
	})

	t.Run("numeric seed", func(t *testing.T) {
		ed, rec := newRecorded(timerange.Minute, "")
		ed.Reset(45)
		assert.Equal(t, "45", ed.Value())
		assert.Equal(t, []string{"echo:45"}, rec.events)
	})

	t.Run("meridian seed normalized", func(t *testing.T) {
		ed, rec := newRecorded(timerange.Meridian, "")
		ed.Reset("AM")
		assert.Equal(t, "am", ed.Value())
		assert.Equal(t, []string{"change:am", "echo:am"}, rec.events)
	})
}

func TestWithTable(t *testing.T) {
	table := timerange.NewTable(map[timerange.Kind]timerange.Bounds{
		timerange.Minute: {Min: "00", Max: "29"},
	})

	ed := New(timerange.Minute, "29", WithTable(table))
	ed.Increment()
	assert.Equal(t, "00", ed.Value())

	ed = New(timerange.Minute, "45", WithTable(table))
	assert.Equal(t, "", ed.Value())
}

func TestRaw(t *testing.T) {
	assert.Equal(t, "", Raw(nil))
	assert.Equal(t, "x", Raw("x"))
	assert.Equal(t, "7", Raw(7))
	assert.Equal(t, "7", Raw(int64(7)))
	assert.Equal(t, "7", Raw(uint8(7)))
	assert.Equal(t, "7", Raw(7.0))
	assert.Equal(t, "7.5", Raw(7.5))
	assert.Equal(t, "hour24", Raw(timerange.Hour24))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "valid", Valid.String())
}
