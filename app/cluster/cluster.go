package cluster

import (
	"fmt"
	"sort"

	"github.com/gpellis87/intel-briefing/app/news"
)

// SimilarityThreshold is the minimum Jaccard index between two headline
// keyword sets for the articles to be considered the same story.
const SimilarityThreshold = 0.25

// MaxKeywords caps a cluster's representative keyword list.
const MaxKeywords = 5

// StoryCluster groups articles from different outlets judged to cover the
// same underlying story. Computed on demand, never cached.
type StoryCluster struct {
	ID       string                 `json:"id"`
	Lead     news.EnrichedArticle   `json:"lead"`
	Articles []news.EnrichedArticle `json:"articles"`
	Keywords []string               `json:"keywords"`
}

// Run partitions articles into story clusters with a single greedy pass:
// each unclustered article seeds a cluster and absorbs every subsequent
// unclustered article whose headline similarity to the seed meets the
// threshold. First seed wins; an article belongs to exactly one cluster.
//
// O(n²) in article count, acceptable at typical category result sizes.
func Run(articles []news.EnrichedArticle) []StoryCluster {
	if len(articles) == 0 {
		return []StoryCluster{}
	}

	ordered := make([][]string, len(articles))
	sets := make([]map[string]struct{}, len(articles))
	for i, article := range articles {
		ordered[i], sets[i] = extractKeywords(article.Title)
	}

	assigned := make([]bool, len(articles))
	clusters := make([]StoryCluster, 0, len(articles))

	for i := range articles {
		if assigned[i] {
			continue
		}

		members := []int{i}
		assigned[i] = true

		for j := i + 1; j < len(articles); j++ {
			if assigned[j] {
				continue
			}
			if jaccard(sets[i], sets[j]) >= SimilarityThreshold {
				members = append(members, j)
				assigned[j] = true
			}
		}

		clusters = append(clusters, buildCluster(i, members, articles, ordered))
	}

	sort.SliceStable(clusters, func(a, b int) bool {
		return len(clusters[a].Articles) > len(clusters[b].Articles)
	})

	return clusters
}

func buildCluster(seed int, members []int, articles []news.EnrichedArticle, ordered [][]string) StoryCluster {
	clusterArticles := make([]news.EnrichedArticle, 0, len(members))
	for _, idx := range members {
		clusterArticles = append(clusterArticles, articles[idx])
	}

	return StoryCluster{
		ID:       fmt.Sprintf("cluster-%d", seed),
		Lead:     selectLead(clusterArticles),
		Articles: clusterArticles,
		Keywords: unionKeywords(members, ordered),
	}
}

// selectLead picks the member with the highest reliability (unknown treated
// as 0); ties keep the earliest-formed member.
func selectLead(members []news.EnrichedArticle) news.EnrichedArticle {
	lead := members[0]
	best := reliabilityOf(lead)

	for _, candidate := range members[1:] {
		if score := reliabilityOf(candidate); score > best {
			lead = candidate
			best = score
		}
	}

	return lead
}

func reliabilityOf(article news.EnrichedArticle) int {
	if article.Reliability == nil {
		return 0
	}
	return *article.Reliability
}

// unionKeywords merges member keyword lists in member order, deduplicated,
// capped at MaxKeywords.
func unionKeywords(members []int, ordered [][]string) []string {
	seen := make(map[string]struct{})
	var union []string

	for _, idx := range members {
		for _, keyword := range ordered[idx] {
			if _, ok := seen[keyword]; ok {
				continue
			}
			seen[keyword] = struct{}{}
			union = append(union, keyword)
			if len(union) == MaxKeywords {
				return union
			}
		}
	}

	return union
}
