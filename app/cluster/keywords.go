package cluster

import (
	"regexp"
	"strings"
)

// Stop words carry no story identity and are dropped before comparing
// headlines. Includes common newswriting filler ("says", "report", "latest")
// on top of the usual English function words.
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
		"from", "is", "it", "its", "as", "are", "was", "were", "be", "been", "has", "have", "had",
		"do", "does", "did", "will", "would", "could", "should", "may", "might", "can", "this",
		"that", "these", "those", "he", "she", "they", "we", "you", "i", "my", "his", "her", "our",
		"their", "your", "who", "what", "which", "when", "where", "how", "why", "not", "no", "so",
		"if", "than", "then", "just", "also", "about", "up", "out", "more", "some", "only", "other",
		"new", "over", "after", "into", "all", "says", "said", "get", "got", "back", "now", "one",
		"two", "first", "last", "year", "years", "day", "time", "most", "being", "make", "like",
		"before", "between", "each", "under", "here", "own", "through", "during", "both", "same",
		"off", "way", "still", "many", "even", "because", "against", "while", "per", "via",
		"report", "reports", "show", "shows", "according", "latest", "need",
	}
	for _, word := range words {
		stopWords[word] = struct{}{}
	}
}

var (
	// Punctuation is stripped except hyphen and apostrophe, which carry
	// meaning inside tokens ("covid-19", "biden's").
	nonTokenPattern = regexp.MustCompile(`[^a-z0-9\s'-]`)
	numericPattern  = regexp.MustCompile(`^\d+$`)
)

// extractKeywords tokenizes a headline into its identifying keyword set.
// The returned slice preserves first-occurrence order and holds each
// keyword once; the map mirrors it for O(1) membership checks.
func extractKeywords(title string) ([]string, map[string]struct{}) {
	cleaned := nonTokenPattern.ReplaceAllString(strings.ToLower(title), "")

	var ordered []string
	set := make(map[string]struct{})

	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 2 {
			continue
		}
		if _, isStop := stopWords[token]; isStop {
			continue
		}
		if numericPattern.MatchString(token) {
			continue
		}
		if _, seen := set[token]; seen {
			continue
		}
		set[token] = struct{}{}
		ordered = append(ordered, token)
	}

	return ordered, set
}

// jaccard computes |A∩B| / |A∪B|, returning 0 when either set is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
