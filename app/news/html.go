package news

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	imgPattern = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
)

// StripHTML returns the text content of an HTML fragment with tags removed
// and whitespace collapsed.
func StripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(tagPattern.ReplaceAllString(fragment, ""))
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// FirstImageSrc returns the src of the first <img> in an HTML fragment,
// or "" when none is present.
func FirstImageSrc(fragment string) string {
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err == nil {
		if src, ok := doc.Find("img").First().Attr("src"); ok && src != "" {
			return src
		}
		return ""
	}

	if match := imgPattern.FindStringSubmatch(fragment); match != nil {
		return match[1]
	}

	return ""
}
