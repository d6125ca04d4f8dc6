// Package util provides shared formatting helpers for epoch timestamps
// and grouped integers.
package util

import (
	"strconv"
	"time"
)

// FormatEpoch renders epoch seconds as a short date ("Jan 2, 2006").
// Zero means the platform never sent the timestamp; render "N/A".
func FormatEpoch(sec int64) string {
	if sec == 0 {
		return "N/A"
	}
	return time.Unix(sec, 0).UTC().Format("Jan 2, 2006")
}

// FormatEpochLong renders epoch seconds as a full date
// ("Monday, January 2, 2006").
func FormatEpochLong(sec int64) string {
	if sec == 0 {
		return "N/A"
	}
	return time.Unix(sec, 0).UTC().Format("Monday, January 2, 2006")
}

// GroupThousands formats n with comma separators ("1234567" → "1,234,567").
func GroupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
