// Package render turns computed rollups, pacing results and forecasts into
// the tabular and textual forms the collaborator layers persist or display:
// CSV tables and a multi-section plain-text pacing report.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FormatMoney renders a currency amount with comma separators and two
// decimals, e.g. 1234567.5 -> "$1,234,567.50".
func FormatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatPct renders a percentage with sign and one decimal, e.g. "+12.5%".
func FormatPct(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// FormatDate renders a day-precision date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func ratio(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func percentage(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func count(v int64) string {
	return strconv.FormatInt(v, 10)
}
