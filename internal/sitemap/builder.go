package sitemap

import (
	"strings"

	"github.com/romangod6/pseo-builder/internal/models"
)

// XDefault is the hreflang value for the fallback alternate.
const XDefault = "x-default"

// Entry is one URL of a sitemap with its assigned tier.
type Entry struct {
	Route      Route
	Loc        string
	LastMod    string
	ChangeFreq string
	Priority   string
	Alternates []models.Alternate
	Tier       Tier
}

// URL converts the entry into its XML form.
func (e Entry) URL() models.URL {
	return models.URL{
		Loc:        e.Loc,
		LastMod:    e.LastMod,
		ChangeFreq: e.ChangeFreq,
		Priority:   e.Priority,
		Alternates: e.Alternates,
	}
}

// Builder turns routes into sitemap entries.
type Builder struct {
	BaseURL       string
	Locales       []string
	DefaultLocale string
	Classifier    *Classifier
	LastMod       string
}

// NewBuilder returns a builder with the default locale "en".
func NewBuilder(baseURL string, locales []string, classifier *Classifier, lastmod string) *Builder {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &Builder{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		Locales:       locales,
		DefaultLocale: "en",
		Classifier:    classifier,
		LastMod:       lastmod,
	}
}

// URL is the absolute page URL for a route.
func (b *Builder) URL(r Route) string {
	return b.BaseURL + "/" + r.Path()
}

// Alternates lists one hreflang link per configured locale followed by an
// x-default link to the default locale's URL.
func (b *Builder) Alternates(r Route) []models.Alternate {
	out := make([]models.Alternate, 0, len(b.Locales)+1)
	for _, locale := range b.Locales {
		out = append(out, models.Alternate{
			Rel:      "alternate",
			Hreflang: locale,
			Href:     b.URL(r.WithLocale(locale)),
		})
	}
	out = append(out, models.Alternate{
		Rel:      "alternate",
		Hreflang: XDefault,
		Href:     b.URL(r.WithLocale(b.DefaultLocale)),
	})
	return out
}

// Entry builds the sitemap entry for a route.
func (b *Builder) Entry(r Route) Entry {
	tier := b.Classifier.Tier(r.Country, r.Category)
	return Entry{
		Route:      r,
		Loc:        b.URL(r),
		LastMod:    b.LastMod,
		ChangeFreq: tier.ChangeFreq(),
		Priority:   tier.Priority(),
		Alternates: b.Alternates(r),
		Tier:       tier,
	}
}

// Entries builds entries for all routes, preserving order.
func (b *Builder) Entries(routes []Route) []Entry {
	out := make([]Entry, 0, len(routes))
	for _, r := range routes {
		out = append(out, b.Entry(r))
	}
	return out
}

// Partition groups entries by tier, preserving their relative order.
func Partition(entries []Entry) map[Tier][]Entry {
	out := make(map[Tier][]Entry, len(Tiers))
	for _, e := range entries {
		out[e.Tier] = append(out[e.Tier], e)
	}
	return out
}
