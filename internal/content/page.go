// Package content renders location x category landing pages as MDX.
package content

import (
	"github.com/romangod6/pseo-builder/internal/pricing"
	"github.com/romangod6/pseo-builder/internal/sitemap"
	"github.com/romangod6/pseo-builder/internal/variation"
)

// Link is an internal link to another generated page.
type Link struct {
	Title string `json:"title" yaml:"title"`
	Href  string `json:"href" yaml:"href"`
}

// Page is everything needed to render one MDX file.
type Page struct {
	Route        sitemap.Route
	CountryName  string
	StateName    string
	CityName     string
	CategoryName string
	Tier         sitemap.Tier
	Text         variation.Composition
	Price        pricing.PriceRange
	Related      []Link
}

// File is the content path of the page relative to the content root.
func (p Page) File() string {
	return p.Route.Path() + sitemap.ContentExt
}

// Href is the site-relative URL of the page.
func (p Page) Href() string {
	return "/" + p.Route.Path()
}

// labels holds the fixed headings of the page body per locale.
type labels struct {
	Benefits  string
	Timeline  string
	Expertise string
	Pricing   string
	Related   string
	LinkFmt   string
}

var pageLabels = map[string]labels{
	"en": {"Why choose us", "Timeline", "Our expertise", "Pricing", "Related services", "%s in %s"},
	"es": {"Por qué elegirnos", "Plazos", "Nuestra experiencia", "Precios", "Servicios relacionados", "%s en %s"},
	"fr": {"Pourquoi nous choisir", "Délais", "Notre expertise", "Tarifs", "Services associés", "%s à %s"},
	"de": {"Warum wir", "Zeitplan", "Unsere Erfahrung", "Preise", "Verwandte Leistungen", "%s in %s"},
}

func labelsFor(locale string) labels {
	if l, ok := pageLabels[locale]; ok {
		return l
	}
	return pageLabels[variation.DefaultLocale]
}
