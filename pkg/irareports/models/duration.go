package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// durationPattern accepts "d", "h:m", "h:m:s", "d.h:m" and "d.h:m:s" with an optional
// fraction of a second, the forms airtime exports use for clip lengths.
var durationPattern = regexp.MustCompile(`^(-)?(?:(\d+)\.)?(\d{1,2}):(\d{1,2})(?::(\d{1,2})(?:[.,](\d{1,7}))?)?$`)

var daysPattern = regexp.MustCompile(`^(-)?(\d+)$`)

// ParseDuration parses a clip duration such as "00:00:30" or "1.02:03:04.5".
// A bare integer is a number of days. It reports false when s is not a duration
// or a component is out of range.
func ParseDuration(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := daysPattern.FindStringSubmatch(s); m != nil {
		days, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || days > 10675199 {
			return 0, false
		}
		d := time.Duration(days) * 24 * time.Hour
		if m[1] == "-" {
			d = -d
		}
		return d, true
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	var days int64
	if m[2] != "" {
		v, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || v > 10675199 {
			return 0, false
		}
		days = v
	}
	hours, _ := strconv.Atoi(m[3])
	minutes, _ := strconv.Atoi(m[4])
	seconds := 0
	if m[5] != "" {
		seconds, _ = strconv.Atoi(m[5])
	}
	if hours > 23 || minutes > 59 || seconds > 59 {
		return 0, false
	}

	var frac time.Duration
	if m[6] != "" {
		digits := m[6] + strings.Repeat("0", 7-len(m[6]))
		ticks, _ := strconv.ParseInt(digits, 10, 64)
		frac = time.Duration(ticks) * 100 * time.Nanosecond
	}

	d := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		frac
	if m[1] == "-" {
		d = -d
	}
	return d, true
}
