package news

import (
	"errors"
	"strings"
	"time"
)

// Rejection reasons returned by Normalizer.Run. Rejected records are
// filtered data, not errors (callers drop them silently).
var (
	ErrMissingFields = errors.New("missing title or url")
	ErrInvalidDate   = errors.New("invalid publish date")
	ErrFutureDate    = errors.New("publish date in the future")
	ErrLiveBlogURL   = errors.New("live blog url")
)

const (
	// DescriptionLimit bounds the normalized description length in runes.
	DescriptionLimit = 300

	// FutureSkewTolerance is how far into the future a publish date may sit
	// before the record is disqualified (upstream clock skew allowance).
	FutureSkewTolerance = time.Minute
)

// Live blog pages rewrite their content continuously and are unsuitable for
// single-point-in-time aggregation.
var liveBlogPatterns = []string{
	"/live/",
	"/live-blog/",
	"/liveblog/",
	"/live-updates/",
	"/live-news/",
}

// Candidate carries one provider record into normalization. Providers fill
// whichever fields their payload has; the normalizer applies the uniform
// validity rules.
type Candidate struct {
	Title       string
	Description string // pre-stripped summary text, preferred over ContentHTML
	ContentHTML string // raw embedded HTML content, used as fallback
	URL         string
	ImageURL    string
	RawDate     string     // textual publish date, parsed if ParsedDate is nil
	ParsedDate  *time.Time // already-parsed publish date (e.g. from gofeed)
	SourceName  string
	Author      string

	// EnclosureURL/EnclosureType and MediaURL are the RSS media attachment
	// fields, consulted in order for image extraction.
	EnclosureURL  string
	EnclosureType string
	MediaURL      string

	// SplitSourceSuffix enables aggregator-style "Headline - Source" title
	// splitting (Google News embeds the outlet name after a trailing " - ").
	SplitSourceSuffix bool
}

type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// Run maps one provider record to the canonical Article shape, or returns a
// rejection error when the record fails the validity rules.
func (n *Normalizer) Run(c Candidate) (Article, error) {
	title := strings.TrimSpace(c.Title)
	articleURL := strings.TrimSpace(c.URL)

	if title == "" || articleURL == "" {
		return Article{}, ErrMissingFields
	}

	if isLiveBlogURL(articleURL) {
		return Article{}, ErrLiveBlogURL
	}

	sourceName := strings.TrimSpace(c.SourceName)
	if c.SplitSourceSuffix {
		if split, suffix := splitSourceSuffix(title); suffix != "" {
			title = split
			sourceName = suffix
		}
	}
	if sourceName == "" {
		sourceName = SourceNameFromURL(articleURL)
	}

	publishedAt, err := n.resolveDate(c)
	if err != nil {
		return Article{}, err
	}

	if publishedAt.After(n.now().Add(FutureSkewTolerance)) {
		return Article{}, ErrFutureDate
	}

	return Article{
		Title:       title,
		Description: normalizeDescription(c.Description, c.ContentHTML),
		URL:         articleURL,
		ImageURL:    extractImage(c),
		PublishedAt: publishedAt,
		SourceName:  sourceName,
		Author:      strings.TrimSpace(c.Author),
	}, nil
}

func (n *Normalizer) resolveDate(c Candidate) (time.Time, error) {
	if c.ParsedDate != nil {
		if c.ParsedDate.IsZero() {
			return time.Time{}, ErrInvalidDate
		}
		return *c.ParsedDate, nil
	}

	parsed, err := ParseDate(c.RawDate)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// normalizeDescription picks the best available text field and truncates it.
// A pre-stripped summary wins over raw HTML content.
func normalizeDescription(summary, contentHTML string) string {
	text := strings.TrimSpace(summary)
	if text == "" && contentHTML != "" {
		text = StripHTML(contentHTML)
	}

	runes := []rune(text)
	if len(runes) > DescriptionLimit {
		return string(runes[:DescriptionLimit])
	}
	return text
}

// extractImage tries, in order: an image-typed enclosure, a structured
// media:content/media:thumbnail URL, then a scan of the embedded HTML for
// the first <img src>. First success wins.
func extractImage(c Candidate) string {
	if c.ImageURL != "" {
		return c.ImageURL
	}
	if c.EnclosureURL != "" && strings.HasPrefix(c.EnclosureType, "image") {
		return c.EnclosureURL
	}
	if c.MediaURL != "" {
		return c.MediaURL
	}
	return FirstImageSrc(c.ContentHTML)
}

func isLiveBlogURL(articleURL string) bool {
	lowered := strings.ToLower(articleURL)
	for _, pattern := range liveBlogPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// splitSourceSuffix splits "Headline - Source" on the last " - " delimiter.
// Returns the original title and "" when no delimiter is present.
func splitSourceSuffix(title string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}
