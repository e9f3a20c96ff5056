package pipeline

import (
	"strings"
	"time"
)

// tzAbbreviations maps common timezone abbreviations to canonical IANA
// names. Upstream data labels windows with whatever the trafficking tool
// emitted, so both forms are accepted.
var tzAbbreviations = map[string]string{
	"EST":  "America/New_York",
	"EDT":  "America/New_York",
	"ET":   "America/New_York",
	"CST":  "America/Chicago",
	"CDT":  "America/Chicago",
	"CT":   "America/Chicago",
	"MST":  "America/Denver",
	"MDT":  "America/Denver",
	"MT":   "America/Denver",
	"PST":  "America/Los_Angeles",
	"PDT":  "America/Los_Angeles",
	"PT":   "America/Los_Angeles",
	"GMT":  "UTC",
	"UTC":  "UTC",
	"BST":  "Europe/London",
	"CET":  "Europe/Paris",
	"CEST": "Europe/Paris",
	"IST":  "Asia/Kolkata",
	"JST":  "Asia/Tokyo",
	"AEST": "Australia/Sydney",
	"AEDT": "Australia/Sydney",
}

// ResolveLocation resolves a timezone identifier or abbreviation to a
// *time.Location. Unrecognized names fall back to UTC rather than failing,
// so a mislabeled upstream timezone degrades to UTC semantics instead of
// aborting a report.
func ResolveLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC
	}
	if canonical, ok := tzAbbreviations[strings.ToUpper(name)]; ok {
		name = canonical
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
