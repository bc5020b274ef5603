// Package format renders organisation metrics and timestamps for display.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Scales applied to raw on-chain amounts before display.
const (
	// One leaves the value as is.
	One = 1
	// OneBillion converts base units with nine decimals into whole units.
	OneBillion = 1e9
)

// DateLayout renders dates as day/month/year.
const DateLayout = "02/01/2006"

// Placeholder is shown for a metric that has not been fetched yet.
const Placeholder = "-"

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators stable across hosts.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Number divides v by scale and renders it with the given number of decimals and
// thousand separators. A scale of zero or less is treated as One.
// Example: Number(2_500_000_000, 2, OneBillion) returns "2.50".
func Number(v float64, decimals int, scale float64) string {
	if scale <= 0 {
		scale = One
	}
	if decimals < 0 {
		decimals = 0
	}
	scaled := v / scale

	const base = 10
	mult := math.Pow(base, float64(decimals))
	scaled = math.Round(scaled*mult) / mult
	if scaled == 0 {
		// Avoid "-0.00".
		scaled = 0
	}

	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), scaled)
}

// Count renders an integer with thousand separators.
func Count(n int64) string {
	return printer.Sprintf("%d", n)
}

// Percent renders a fraction in [0,1] as a percentage with two decimals, without the
// percent sign. Example: Percent(0.4321) returns "43.21".
func Percent(fraction float64) string {
	const hundred = 100
	return Number(fraction*hundred, 2, One)
}

// Date renders t in day/month/year form. The zero time renders as the placeholder.
func Date(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format(DateLayout)
}

// Age renders how long ago t was relative to now, e.g. "3 months ago".
func Age(t, now time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
