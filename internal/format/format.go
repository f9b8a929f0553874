package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func tag(lang string) language.Tag {
	switch strings.ToLower(lang) {
	case "hi":
		return language.Hindi
	default:
		return language.English
	}
}

// Number formats v with locale digit grouping and a fixed number of decimals.
// Example: Number(1247, 0, "en") => "1,247"
func Number(v float64, decimals int, lang string) string {
	p := message.NewPrinter(tag(lang))
	return p.Sprint(number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// Percent formats a signed percentage change, e.g. +12% or -5%.
func Percent(delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("+%g%%", delta)
	}
	return fmt.Sprintf("%g%%", delta)
}

// Clock renders the time of day shown next to chat messages.
func Clock(t time.Time, lang string) string {
	if strings.ToLower(lang) == "hi" {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}

// Relative returns a coarse "time ago" string relative to now.
func Relative(ts, now time.Time, lang string) string {
	hi := strings.ToLower(lang) == "hi"
	diff := now.Sub(ts)
	switch {
	case diff < time.Minute:
		if hi {
			return "अभी"
		}
		return "just now"
	case diff < time.Hour:
		return unitsAgo(int(diff.Minutes()), "minute", "मिनट", hi)
	case diff < 24*time.Hour:
		return unitsAgo(int(diff.Hours()), "hour", "घंटे", hi)
	}
	return ts.Format("2006-01-02")
}

func unitsAgo(n int, unit, hiUnit string, hi bool) string {
	if hi {
		return fmt.Sprintf("%d %s पहले", n, hiUnit)
	}
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
