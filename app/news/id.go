package news

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// GenerateID derives a deterministic article identifier from (title, url).
// Client-side read/bookmark state is keyed by this, so it must be stable
// across repeated fetches of the same content.
func GenerateID(title, articleURL string) string {
	content := fmt.Sprintf("%s|%s", title, articleURL)
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:8])
}

// ExtractDomain returns the host of a URL with any leading "www." stripped.
// Returns "" for unparseable URLs.
func ExtractDomain(articleURL string) string {
	parsed, err := url.Parse(articleURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// SourceNameFromURL derives a readable source name from a URL host,
// e.g. "https://www.reuters.com/x" -> "Reuters".
func SourceNameFromURL(articleURL string) string {
	domain := ExtractDomain(articleURL)
	if domain == "" {
		return "Unknown"
	}

	parts := strings.Split(domain, ".")
	name := parts[0]
	if len(parts) >= 2 {
		name = parts[len(parts)-2]
	}

	return titleCaser.String(name)
}
