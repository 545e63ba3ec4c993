// Package format renders counters and timestamps for display.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// fixed mirrors Number.prototype.toFixed for non-negative v: the exact binary
// value is rounded, and a true tie goes to the larger neighbour.
func fixed(v float64, digits int) string {
	// 64 places hold every fractional bit of the magnitudes formatted here.
	exact := strconv.FormatFloat(v, 'f', 64, 64)
	dot := strings.IndexByte(exact, '.')
	cut := dot + 1 + digits
	head := exact[:cut]
	if digits == 0 {
		head = exact[:dot]
	}
	if exact[cut] < '5' {
		return head
	}

	b := []byte(head)
	i := len(b) - 1
	for ; i >= 0; i-- {
		if b[i] == '.' {
			continue
		}
		if b[i] == '9' {
			b[i] = '0'
			continue
		}
		b[i]++
		break
	}
	if i < 0 {
		b = append([]byte{'1'}, b...)
	}
	return string(b)
}

func Views(n int64) string {
	switch {
	case n >= 1_000_000:
		v := float64(n) / 1_000_000
		if v == math.Trunc(v) {
			return fixed(v, 0) + "M views"
		}
		return fixed(v, 1) + "M views"
	case n >= 1_000:
		return fixed(float64(n)/1_000, 0) + "K views"
	}
	return fmt.Sprintf("%d views", n)
}

func Subscribers(n int64) string {
	switch {
	case n >= 1_000_000:
		return fixed(float64(n)/1_000_000, 1) + "M subscribers"
	case n >= 1_000:
		return fixed(float64(n)/1_000, 0) + "K subscribers"
	case n == 1:
		return "1 subscriber"
	}
	return fmt.Sprintf("%d subscribers", n)
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TimeAgo describes how long before now t happened.
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	if seconds < 60 {
		return "just now"
	}
	minutes := seconds / 60
	if minutes < 60 {
		return plural(minutes, "minute")
	}
	hours := minutes / 60
	if hours < 24 {
		return plural(hours, "hour")
	}
	days := hours / 24
	if days < 7 {
		return plural(days, "day")
	}
	if weeks := days / 7; weeks < 4 {
		return plural(weeks, "week")
	}
	if months := days / 30; months < 12 {
		return plural(months, "month")
	}
	return plural(days/365, "year")
}

// Duration renders a play length as m:ss, or h:mm:ss from one hour up.
func Duration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
