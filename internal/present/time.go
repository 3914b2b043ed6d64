package present

import (
	"time"

	"rawabit/internal/i18n"

	"golang.org/x/text/number"
)

type unit int

const (
	minute unit = iota
	hour
	day
)

// arabicUnits holds the singular, dual, plural (3-10) and counted (11+)
// forms of each unit.
var arabicUnits = map[unit][4]string{
	minute: {"دقيقة", "دقيقتين", "دقائق", "دقيقة"},
	hour:   {"ساعة", "ساعتين", "ساعات", "ساعة"},
	day:    {"يوم", "يومين", "أيام", "يوماً"},
}

var englishUnits = map[unit][2]string{
	minute: {"minute", "minutes"},
	hour:   {"hour", "hours"},
	day:    {"day", "days"},
}

// RelativeTime renders how long before now t was, e.g. "منذ ٥ دقائق" or
// "5 minutes ago". Anything older than 30 days is rendered as a date.
func RelativeTime(lang i18n.Lang, t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return i18n.T(lang, i18n.TimeJustNow)
	case d < time.Hour:
		return ago(lang, int(d/time.Minute), minute)
	case d < 24*time.Hour:
		return ago(lang, int(d/time.Hour), hour)
	case d < 30*24*time.Hour:
		return ago(lang, int(d/(24*time.Hour)), day)
	default:
		return FormatDate(lang, t)
	}
}

func ago(lang i18n.Lang, n int, u unit) string {
	return i18n.T(lang, i18n.TimeAgo, quantity(lang, n, u))
}

func quantity(lang i18n.Lang, n int, u unit) string {
	p := i18n.Printer(lang)
	if lang == i18n.English {
		forms := englishUnits[u]
		if n == 1 {
			return p.Sprintf("%d %s", n, forms[0])
		}
		return p.Sprintf("%d %s", n, forms[1])
	}

	forms := arabicUnits[u]
	switch {
	case n == 1:
		return forms[0]
	case n == 2:
		return forms[1]
	case n >= 3 && n <= 10:
		return p.Sprintf("%d %s", n, forms[2])
	default:
		return p.Sprintf("%d %s", n, forms[3])
	}
}

// FormatDate renders t as "15 مارس 2024" with Arabic month names, or
// "March 15, 2024" in English. Digits follow the language's printer.
func FormatDate(lang i18n.Lang, t time.Time) string {
	p := i18n.Printer(lang)
	year := number.Decimal(t.Year(), number.NoSeparator())
	if lang == i18n.English {
		return p.Sprintf("%s %d, %v", t.Month().String(), t.Day(), year)
	}
	return p.Sprintf("%d %s %v", t.Day(), i18n.Months[t.Month()-1], year)
}
