// Package sizefmt converts between human-readable size strings and byte
// counts. Units are decimal (1000-based), matching how archive sizes are
// presented to the user.
package sizefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Invalid is the sentinel returned for size strings that cannot be parsed.
// It is distinct from a legitimate zero-byte value and must be checked by
// callers before using the result.
const Invalid int64 = -1

var units = map[string]int64{
	"B":  1,
	"KB": 1000,
	"MB": 1000 * 1000,
	"GB": 1000 * 1000 * 1000,
	"TB": 1000 * 1000 * 1000 * 1000,
}

// Parse converts a string like "12", "500b" or "1.5 MB" into a byte count.
// The unit defaults to bytes when omitted and whitespace between number and
// unit is optional. Returns Invalid on any parse failure.
func Parse(s string) int64 {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return Invalid
	}
	if !strings.HasSuffix(t, "B") {
		t += "B"
	}

	unit := "B"
	num := strings.TrimSuffix(t, "B")
	if n := len(num); n > 0 {
		switch num[n-1] {
		case 'K', 'M', 'G', 'T':
			unit = num[n-1:] + "B"
			num = num[:n-1]
		}
	}

	num = strings.TrimSpace(num)
	if num == "" || strings.ContainsAny(num, " \t") {
		return Invalid
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Invalid
	}
	return int64(f * float64(units[unit]))
}

// Format renders n as a human-readable decimal size, e.g. "1.50 MB".
func Format(n int64) string {
	const unit = 1000
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGT"[exp])
}
