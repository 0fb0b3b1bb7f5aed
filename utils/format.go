package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ============================================================================
// DISPLAY FORMATTING
// ============================================================================
// The services hand raw numbers and dates outward; everything the browser
// shows as text is produced here, standing in for the Intl.* formatters a
// frontend would use.

// FormatCurrency renders a value with the locale's conventions and the
// currency's symbol, e.g. (25000, "en-US", "USD") -> "$25,000.00".
func FormatCurrency(value float64, locale, currencyCode string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fmt.Sprintf("%.2f %s", value, currencyCode)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(value)))
}

// FormatMovementDate renders a movement timestamp relative to now: "Today",
// "Yesterday", "N days ago" up to a week, then a short locale date.
func FormatMovementDate(date time.Time, locale string, now time.Time) string {
	daysPassed := int(math.Round(math.Abs(now.Sub(date).Hours() / 24)))
	switch {
	case daysPassed == 0:
		return "Today"
	case daysPassed == 1:
		return "Yesterday"
	case daysPassed <= 7:
		return fmt.Sprintf("%d days ago", daysPassed)
	}
	// Month-first for US-style locales, day-first everywhere else.
	if strings.HasPrefix(locale, "en-US") {
		return date.Format("1/2/2006")
	}
	return date.Format("2/1/2006")
}

// FormatCountdown renders seconds as the MM:SS label of the logout timer.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
