// Package display formats numbers for players.
package display

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Number renders v with thousands separators below 1000 and SI suffixes
// above it: 999.5, 12.35k, 4M.
func Number(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.Abs(v) < 1000:
		return humanize.CommafWithDigits(v, 2)
	}
	return strings.Replace(humanize.SIWithDigits(v, 2, ""), " ", "", 1)
}

// Count renders an integer count with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// Rate renders a per-second rate.
func Rate(v float64) string {
	return Number(v) + "/s"
}

// Multiplier renders a multiplicative factor, e.g. x1.15.
func Multiplier(v float64) string {
	return "x" + humanize.CommafWithDigits(v, 2)
}

// Away renders how long a player was gone, e.g. "2 hours".
func Away(d time.Duration) string {
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now.Add(-d), now, "", ""))
}
