package sitemap

import "fmt"

// Tier is a crawl-budget priority bucket.
type Tier int

const (
	Tier1 Tier = iota + 1
	Tier2
	Tier3
)

// Tiers lists every tier in index order.
var Tiers = []Tier{Tier1, Tier2, Tier3}

func (t Tier) String() string {
	return fmt.Sprintf("tier%d", int(t))
}

// ChangeFreq is the changefreq written for URLs in the tier.
func (t Tier) ChangeFreq() string {
	switch t {
	case Tier1:
		return "daily"
	case Tier2:
		return "weekly"
	default:
		return "monthly"
	}
}

// Priority is the priority written for URLs in the tier.
func (t Tier) Priority() string {
	switch t {
	case Tier1:
		return "0.9"
	case Tier2:
		return "0.7"
	default:
		return "0.5"
	}
}

// Default priority sets used when configuration does not provide any.
var (
	DefaultPriorityCountries = []string{
		"united-states",
		"united-kingdom",
		"canada",
		"australia",
		"germany",
	}
	DefaultPriorityCategories = []string{
		"web-design",
		"seo",
		"ecommerce",
		"web-development",
	}
)

// Classifier assigns tiers from static priority sets.
type Classifier struct {
	countries  map[string]struct{}
	categories map[string]struct{}
}

// NewClassifier builds a classifier. Empty lists mean nothing is prioritized.
func NewClassifier(countries, categories []string) *Classifier {
	c := &Classifier{
		countries:  make(map[string]struct{}, len(countries)),
		categories: make(map[string]struct{}, len(categories)),
	}
	for _, v := range countries {
		c.countries[v] = struct{}{}
	}
	for _, v := range categories {
		c.categories[v] = struct{}{}
	}
	return c
}

// DefaultClassifier uses DefaultPriorityCountries and DefaultPriorityCategories.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultPriorityCountries, DefaultPriorityCategories)
}

// Tier is tier1 when both country and category are prioritized, tier2 when
// exactly one is, tier3 otherwise.
func (c *Classifier) Tier(country, category string) Tier {
	_, hotCountry := c.countries[country]
	_, hotCategory := c.categories[category]
	switch {
	case hotCountry && hotCategory:
		return Tier1
	case hotCountry || hotCategory:
		return Tier2
	default:
		return Tier3
	}
}
