package timepicker

import (
	"strconv"
	"strings"

	"github.com/pthm/hxtime/timerange"
)

// Part names one editor inside a picker.
type Part string

const (
	PartHour     Part = "hour"
	PartMinute   Part = "minute"
	PartSecond   Part = "second"
	PartMeridian Part = "meridian"
)

// Clock selects 24-hour or 12-hour display.
type Clock string

const (
	Clock24 Clock = "24h"
	Clock12 Clock = "12h"
)

// Parts returns the parts shown by props in display order.
func (p Props) Parts() []Part {
	parts := []Part{PartHour, PartMinute}
	if p.Seconds {
		parts = append(parts, PartSecond)
	}
	if p.Clock == Clock12 {
		parts = append(parts, PartMeridian)
	}
	return parts
}

// KindOf returns the value kind governing part, and false when props do not
// show it.
func (p Props) KindOf(part Part) (timerange.Kind, bool) {
	switch part {
	case PartHour:
		if p.Clock == Clock12 {
			return timerange.Hour12, true
		}
		return timerange.Hour24, true
	case PartMinute:
		return timerange.Minute, true
	case PartSecond:
		return timerange.Second, p.Seconds
	case PartMeridian:
		return timerange.Meridian, p.Clock == Clock12
	}
	return "", false
}

// Value returns the current value of part.
func (p Props) Value(part Part) string {
	if v := p.field(part); v != nil {
		return *v
	}
	return ""
}

func (p *Props) field(part Part) *string {
	switch part {
	case PartHour:
		return &p.Hour
	case PartMinute:
		return &p.Minute
	case PartSecond:
		return &p.Second
	case PartMeridian:
		return &p.Meridian
	}
	return nil
}

func (p *Props) set(part Part, v string) {
	if f := p.field(part); f != nil {
		*f = v
	}
}

// Format aggregates the parts into "HH:MM", "HH:MM:SS", "HH:MM am" or
// "HH:MM:SS am". It returns "" while any shown part is empty.
func Format(p Props) string {
	var clock []string
	meridian := ""
	for _, part := range p.Parts() {
		v := p.Value(part)
		if v == "" {
			return ""
		}
		if part == PartMeridian {
			meridian = v
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return ""
		}
		clock = append(clock, pad(n))
	}

	out := strings.Join(clock, ":")
	if meridian != "" {
		out += " " + meridian
	}
	return out
}

// SetTime copies the parts of a "HH:MM[:SS][ am]" string into p without
// validating them. Hydrate sanitizes the result.
func (p *Props) SetTime(s string) {
	values := splitTime(s)
	for _, part := range []Part{PartHour, PartMinute, PartSecond, PartMeridian} {
		p.set(part, values[part])
	}
}

// splitTime breaks a time string such as "10:30 pm", "10:30pm" or
// "22:30:05" into raw part values. Missing parts are "".
func splitTime(s string) map[Part]string {
	s = strings.TrimSpace(s)
	out := map[Part]string{}

	i := strings.LastIndexAny(s, "0123456789")
	if i >= 0 && i+1 < len(s) {
		out[PartMeridian] = strings.TrimSpace(s[i+1:])
		s = s[:i+1]
	} else if i < 0 {
		out[PartMeridian] = s
		return out
	}

	fields := strings.Split(s, ":")
	for i, part := range []Part{PartHour, PartMinute, PartSecond} {
		if i < len(fields) {
			out[part] = strings.TrimSpace(fields[i])
		}
	}
	return out
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
