package content

import (
	"fmt"

	"github.com/romangod6/pseo-builder/internal/catalog"
	"github.com/romangod6/pseo-builder/internal/models"
	"github.com/romangod6/pseo-builder/internal/sitemap"
)

// RelatedLinks builds the internal links of a page: the same category in up
// to sameCategory sibling cities of the state, then up to sameCity other
// categories in the same city. Both lists start at seed and wrap around so
// that neighbouring pages link to different subsets.
func RelatedLinks(c *catalog.Catalog, t catalog.Triple, seed int, sameCategory, sameCity int) []Link {
	if seed < 0 {
		seed = -seed
	}
	lf := labelsFor(t.Locale)
	var out []Link

	siblings := c.Siblings(t.Location)
	for _, loc := range rotate(siblings, seed, sameCategory) {
		out = append(out, Link{
			Title: fmt.Sprintf(lf.LinkFmt, t.Category.Name(t.Locale), loc.CityName),
			Href:  href(t.Locale, loc, t.Category.Slug),
		})
	}

	others := make([]models.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Slug != t.Category.Slug {
			others = append(others, cat)
		}
	}
	for _, cat := range rotate(others, seed, sameCity) {
		out = append(out, Link{
			Title: fmt.Sprintf(lf.LinkFmt, cat.Name(t.Locale), t.Location.CityName),
			Href:  href(t.Locale, t.Location, cat.Slug),
		})
	}
	return out
}

func href(locale string, loc models.Location, category string) string {
	r := sitemap.Route{
		Locale:   locale,
		Country:  loc.Country,
		State:    loc.State,
		City:     loc.City,
		Category: category,
	}
	return "/" + r.Path()
}

// rotate returns up to n items of list starting at start % len(list).
func rotate[T any](list []T, start, n int) []T {
	if len(list) == 0 || n <= 0 {
		return nil
	}
	if n > len(list) {
		n = len(list)
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list[(start+i)%len(list)])
	}
	return out
}
