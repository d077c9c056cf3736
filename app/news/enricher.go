package news

// BiasInfo is the enrichment payload for a known source.
type BiasInfo struct {
	Bias        BiasRating
	Reliability int
}

// BiasLookup resolves a source's bias/reliability. Implemented by the static
// bias table; kept as an interface so tests can inject a fixture.
type BiasLookup interface {
	Lookup(domain, name string) (BiasInfo, bool)
}

// Enricher attaches bias/reliability data to normalized articles. Pure and
// deterministic given the static table.
type Enricher struct {
	table BiasLookup
}

func NewEnricher(table BiasLookup) *Enricher {
	return &Enricher{table: table}
}

func (e *Enricher) Run(article Article) EnrichedArticle {
	domain := ExtractDomain(article.URL)

	enriched := EnrichedArticle{
		Article:      article,
		ID:           GenerateID(article.Title, article.URL),
		SourceDomain: domain,
	}

	if info, ok := e.table.Lookup(domain, article.SourceName); ok {
		bias := info.Bias
		direction := bias.Direction()
		reliability := info.Reliability

		enriched.Bias = &bias
		enriched.BiasDirection = &direction
		enriched.Reliability = &reliability
	}

	return enriched
}

func (e *Enricher) RunAll(articles []Article) []EnrichedArticle {
	enriched := make([]EnrichedArticle, 0, len(articles))
	for _, article := range articles {
		enriched = append(enriched, e.Run(article))
	}
	return enriched
}
