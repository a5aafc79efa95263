package timezone

import (
	"regexp"
	"sort"
	"strings"
)

// namePattern is the only format rule applied to free-text timezone input.
var namePattern = regexp.MustCompile(`^[A-Za-z/_]+$`)

// Suggested are offered as completions; any name matching the pattern is accepted.
var Suggested = []string{
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/Phoenix",
	"America/Anchorage",
	"Pacific/Honolulu",
	"America/Boise",
}

const Default = "America/New_York"

func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Complete returns suggested names with the given prefix, case-insensitively.
func Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, tz := range Suggested {
		if strings.HasPrefix(strings.ToLower(tz), prefix) {
			out = append(out, tz)
		}
	}
	sort.Strings(out)
	return out
}
