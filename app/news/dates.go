package news

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Some JSON providers emit "2026-02-25 12:30:00 +0000" instead of ISO-8601.
var spaceDatePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s(\d{2}:\d{2}:\d{2})\s?([+-]\d{4})?$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02",
}

// ParseDate parses a publish timestamp, accepting ISO-8601 and the common
// space-separated "YYYY-MM-DD HH:MM:SS ±ZZZZ" form by rewriting the latter
// into ISO form first.
func ParseDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if match := spaceDatePattern.FindStringSubmatch(cleaned); match != nil {
		tz := "Z"
		if match[3] != "" {
			tz = match[3][:3] + ":" + match[3][3:]
		}
		cleaned = match[1] + "T" + match[2] + tz
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date: %q", raw)
}
