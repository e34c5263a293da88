package viewmodel

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
)

// Labels shown for the two subscription cadences.
const (
	LabelYearly  = "Jahres-Abo"
	LabelMonthly = "Monats-Abo"
)

// GameDateLayout is the German medium date with short time.
const GameDateLayout = "02.01.2006, 15:04"

// gameDateInputs are the timestamp shapes the service sends.
var gameDateInputs = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
}

// FormatCost formats a euro amount for display.
func FormatCost(amount float64) string {
	return fmt.Sprintf("€%.2f", amount)
}

// SubscriptionLabel maps the cadence to its German label. Anything that is not
// yearly is shown as monthly.
func SubscriptionLabel(t model.SubscriptionType) string {
	if t.IsYearly() {
		return LabelYearly
	}
	return LabelMonthly
}

// JoinMonths joins active month labels for display.
func JoinMonths(months []string) string {
	return strings.Join(months, ", ")
}

// FormatGameDate renders a service timestamp in loc. Strings in an unexpected
// format are returned unchanged.
func FormatGameDate(s string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range gameDateInputs {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc).Format(GameDateLayout)
		}
	}
	return s
}

// FormatStartDate formats the date field value.
func FormatStartDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// TruncateString truncates a string to the specified length with ellipsis.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// SanitizeForDisplay removes potentially problematic characters for terminal display.
func SanitizeForDisplay(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// FormatDuration formats a request duration in human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if seconds > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%dm", minutes)
}
