package providers

import (
	"strings"

	"github.com/gpellis87/intel-briefing/app/news"
)

// Display names for outlets whose domain alone reads poorly.
var knownSourceNames = map[string]string{
	"nytimes":        "The New York Times",
	"washingtonpost": "The Washington Post",
	"foxnews":        "Fox News",
	"nbcnews":        "NBC News",
	"cbsnews":        "CBS News",
	"abcnews":        "ABC News",
	"cnn":            "CNN",
	"bbc":            "BBC",
	"reuters":        "Reuters",
	"apnews":         "Associated Press",
	"theguardian":    "The Guardian",
	"wsj":            "Wall Street Journal",
	"bloomberg":      "Bloomberg",
	"cnbc":           "CNBC",
	"nypost":         "New York Post",
	"usatoday":       "USA Today",
	"politico":       "Politico",
	"thehill":        "The Hill",
	"axios":          "Axios",
	"npr":            "NPR",
	"msnbc":          "MSNBC",
	"breitbart":      "Breitbart",
	"dailywire":      "The Daily Wire",
	"huffpost":       "HuffPost",
	"vox":            "Vox",
	"theatlantic":    "The Atlantic",
	"techcrunch":     "TechCrunch",
	"theverge":       "The Verge",
	"arstechnica":    "Ars Technica",
	"wired":          "Wired",
	"espn":           "ESPN",
}

// sourceNameFromDomain formats a bare source domain ("nytimes.com",
// "www.wired.com") into a display name.
func sourceNameFromDomain(domain string) string {
	cleaned := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	name, _, _ := strings.Cut(cleaned, ".")
	if name == "" {
		return "Unknown"
	}

	if known, ok := knownSourceNames[name]; ok {
		return known
	}
	return news.SourceNameFromURL("https://" + cleaned)
}
