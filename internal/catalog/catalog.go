// Package catalog holds the locations and service categories pages are
// generated for.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/romangod6/pseo-builder/internal/models"
)

// Catalog is the dataset the generator enumerates.
type Catalog struct {
	Locations  []models.Location `yaml:"locations"`
	Categories []models.Category `yaml:"categories"`
}

// Triple identifies a single generated page.
type Triple struct {
	Locale   string
	Location models.Location
	Category models.Category
}

// Load reads a YAML catalog. An empty path returns the built-in dataset.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return &c, nil
}

// normalize fills missing slugs and display names from each other.
func (c *Catalog) normalize() {
	for i := range c.Locations {
		l := &c.Locations[i]
		l.Country, l.CountryName = fill(l.Country, l.CountryName)
		l.State, l.StateName = fill(l.State, l.StateName)
		l.City, l.CityName = fill(l.City, l.CityName)
	}
	for i := range c.Categories {
		cat := &c.Categories[i]
		if cat.Names == nil {
			cat.Names = map[string]string{}
		}
		cat.Slug, cat.Names["en"] = fill(cat.Slug, cat.Names["en"])
	}
}

func fill(slug, name string) (string, string) {
	if slug == "" {
		slug = Slugify(name)
	}
	if name == "" {
		name = Title(slug)
	}
	return slug, name
}

// Validate rejects catalogs that would produce malformed routes.
func (c *Catalog) Validate() error {
	if len(c.Locations) == 0 {
		return errors.New("no locations")
	}
	if len(c.Categories) == 0 {
		return errors.New("no categories")
	}
	for _, l := range c.Locations {
		if l.Country == "" || l.State == "" || l.City == "" {
			return fmt.Errorf("location %q is missing a country, state or city", l.CityName)
		}
		for _, slug := range []string{l.Country, l.State, l.City} {
			if err := checkSlug(slug); err != nil {
				return fmt.Errorf("location %q: %w", l.CityName, err)
			}
		}
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Slug == "" {
			return errors.New("category without slug")
		}
		if err := checkSlug(cat.Slug); err != nil {
			return fmt.Errorf("category: %w", err)
		}
		if seen[cat.Slug] {
			return fmt.Errorf("duplicate category %q", cat.Slug)
		}
		seen[cat.Slug] = true
		if cat.PriceMin < 0 || cat.PriceMax < 0 {
			return fmt.Errorf("category %q has a negative base price", cat.Slug)
		}
	}
	return nil
}

// checkSlug rejects segments that are not already in slug form.
func checkSlug(s string) error {
	if want := Slugify(s); want != s {
		return fmt.Errorf("slug %q is not URL-safe (want %q)", s, want)
	}
	return nil
}

// Expand enumerates every (locale, location, category) triple in a stable
// order: locale, then location, then category as listed.
func (c *Catalog) Expand(locales []string) []Triple {
	out := make([]Triple, 0, len(locales)*len(c.Locations)*len(c.Categories))
	for _, locale := range locales {
		for _, loc := range c.Locations {
			for _, cat := range c.Categories {
				out = append(out, Triple{Locale: locale, Location: loc, Category: cat})
			}
		}
	}
	return out
}

// Siblings returns the other cities in the same country and state as loc,
// sorted by slug.
func (c *Catalog) Siblings(loc models.Location) []models.Location {
	var out []models.Location
	for _, other := range c.Locations {
		if other.Country == loc.Country && other.State == loc.State && other.City != loc.City {
			out = append(out, other)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

// Category looks up a category by slug.
func (c *Catalog) Category(slug string) (models.Category, bool) {
	for _, cat := range c.Categories {
		if cat.Slug == slug {
			return cat, true
		}
	}
	return models.Category{}, false
}

// Location looks up a location by country and city slug.
func (c *Catalog) Location(country, city string) (models.Location, bool) {
	for _, l := range c.Locations {
		if l.City == city && (country == "" || l.Country == country) {
			return l, true
		}
	}
	return models.Location{}, false
}
