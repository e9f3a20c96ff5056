package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"adpace/internal/core/domain"
)

// dateLayouts are tried in order when parsing upstream date fields.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// Normalize coerces raw upstream rows into typed line-item records. Rows
// with an unparseable date or an empty line-item id are skipped; non-numeric
// spend and impression values coerce to zero; negative values clamp to zero.
// Duplicate (date, line item) rows keep the last occurrence. The result is
// sorted by (date, line_item_id) ascending.
func Normalize(rows []domain.RawRecord) []domain.LineItemRecord {
	byKey := make(map[string]domain.LineItemRecord, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		date, ok := coerceDate(row["date"])
		if !ok {
			continue
		}
		lineItemID := coerceString(row["line_item_id"])
		if lineItemID == "" {
			continue
		}

		rec := domain.LineItemRecord{
			Date:         date,
			CampaignID:   coerceString(row["campaign_id"]),
			CampaignName: coerceString(row["campaign_name"]),
			LineItemID:   lineItemID,
			LineItemName: coerceString(row["line_item_name"]),
			Spend:        round2(max(0, coerceFloat(row["spend"]))),
			Impressions:  max(0, coerceInt(row["impressions"])),
		}

		key := date.Format("2006-01-02") + "|" + lineItemID
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = rec
	}

	records := make([]domain.LineItemRecord, 0, len(order))
	for _, key := range order {
		records = append(records, byKey[key])
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].LineItemID < records[j].LineItemID
	})
	return records
}

// ParseDate parses a date string against the supported layouts, returning
// the calendar day in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), true
		}
	}
	return time.Time{}, false
}

func coerceDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return dateOnly(t), true
	case string:
		return ParseDate(t)
	default:
		return time.Time{}, false
	}
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case nil:
		return ""
	case fmt.Stringer:
		return s.String()
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case float64:
		// integral ids arrive as floats from JSON decoding
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			// tolerate "1234.0" style exports
			f, ferr := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if ferr != nil {
				return 0
			}
			return int64(f)
		}
		return i
	default:
		return 0
	}
}
