package news

import (
	"time"
)

// Bias classification types

type BiasRating string

const (
	BiasFarLeft     BiasRating = "far-left"
	BiasLeft        BiasRating = "left"
	BiasCenterLeft  BiasRating = "center-left"
	BiasCenter      BiasRating = "center"
	BiasCenterRight BiasRating = "center-right"
	BiasRight       BiasRating = "right"
	BiasFarRight    BiasRating = "far-right"
)

func (b BiasRating) IsValid() bool {
	switch b {
	case BiasFarLeft, BiasLeft, BiasCenterLeft, BiasCenter, BiasCenterRight, BiasRight, BiasFarRight:
		return true
	}
	return false
}

type BiasDirection string

const (
	DirectionLeft   BiasDirection = "left"
	DirectionCenter BiasDirection = "center"
	DirectionRight  BiasDirection = "right"
)

// Direction collapses the 7-point bias scale into 3 buckets.
func (b BiasRating) Direction() BiasDirection {
	switch b {
	case BiasFarLeft, BiasLeft, BiasCenterLeft:
		return DirectionLeft
	case BiasCenterRight, BiasRight, BiasFarRight:
		return DirectionRight
	default:
		return DirectionCenter
	}
}

// Category types

type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryPolitics      Category = "politics"
	CategoryTechnology    Category = "technology"
	CategoryBusiness      Category = "business"
	CategoryScience       Category = "science"
	CategoryHealth        Category = "health"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryGeneral,
	CategoryPolitics,
	CategoryTechnology,
	CategoryBusiness,
	CategoryScience,
	CategoryHealth,
	CategorySports,
	CategoryEntertainment,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Article is the canonical pre-enrichment article shape. Every provider's
// payload is normalized into this before it enters the aggregation pipeline.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	SourceName  string    `json:"sourceName"`
	Author      string    `json:"author,omitempty"`
	Content     string    `json:"content,omitempty"`
}

// EnrichedArticle is an Article after bias/reliability enrichment. The bias
// fields are pointers so unknown sources serialize as null rather than a
// zero value.
type EnrichedArticle struct {
	Article

	ID            string         `json:"id"`
	SourceDomain  string         `json:"sourceDomain"`
	Bias          *BiasRating    `json:"bias"`
	BiasDirection *BiasDirection `json:"biasDirection"`
	Reliability   *int           `json:"reliability"`
}
