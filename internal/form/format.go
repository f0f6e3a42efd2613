package form

import (
	"fmt"
	"strings"
)

// FormatUsage renders a duration in milliseconds as "H horas M minutos S segundos".
// Hours are left out when zero; minutes only when hours are left out too.
func FormatUsage(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	secs := ms / 1000 //nolint:mnd
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	var b strings.Builder

	if hours > 0 {
		fmt.Fprintf(&b, "%d horas ", hours)
	}

	if hours > 0 || minutes > 0 {
		fmt.Fprintf(&b, "%d minutos ", minutes)
	}

	fmt.Fprintf(&b, "%d segundos", seconds)

	return b.String()
}

// VolumePercent renders a volume in [0, 1] as a truncated percentage.
func VolumePercent(v float32) int {
	return int(v * 100) //nolint:mnd
}

// OrPlaceholder substitutes NotAvailable for an empty display value.
func OrPlaceholder(s string) string {
	if s == "" {
		return NotAvailable
	}

	return s
}
