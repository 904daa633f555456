package variation

import "strings"

// Section names every locale table provides.
const (
	SectionHeadline  = "headline"
	SectionIntro     = "intro"
	SectionBenefits  = "benefits"
	SectionTimeline  = "timeline"
	SectionExpertise = "expertise"
)

// Sections lists the page sections in render order.
var Sections = []string{
	SectionHeadline,
	SectionIntro,
	SectionBenefits,
	SectionTimeline,
	SectionExpertise,
}

// TemplateFunc builds a phrase from display names.
type TemplateFunc func(city, category string) string

// Variant is either literal text with {city}/{category} placeholders or a
// template function. Exactly one of the two is set.
type Variant struct {
	text string
	fn   TemplateFunc
}

// Literal wraps placeholder text.
func Literal(text string) Variant {
	return Variant{text: text}
}

// Template wraps a generator function.
func Template(fn TemplateFunc) Variant {
	return Variant{fn: fn}
}

// IsTemplate reports whether the variant is backed by a function.
func (v Variant) IsTemplate() bool {
	return v.fn != nil
}

// Render produces the final text for a city and category.
func (v Variant) Render(city, category string) string {
	if v.fn != nil {
		return v.fn(city, category)
	}
	return strings.NewReplacer("{city}", city, "{category}", category).Replace(v.text)
}

// Table holds the variants for each section of one locale.
type Table map[string][]Variant

// Select returns the variant at seed % len(list). ok is false for an empty list.
func Select(list []Variant, seed int) (v Variant, ok bool) {
	if len(list) == 0 {
		return Variant{}, false
	}
	i := seed % len(list)
	if i < 0 {
		i = -i
	}
	return list[i], true
}

// Composition is the rendered text of every section for one page.
type Composition struct {
	Locale    string `json:"locale" yaml:"locale"`
	Seed      int32  `json:"seed" yaml:"seed"`
	Headline  string `json:"headline" yaml:"headline"`
	Intro     string `json:"intro" yaml:"intro"`
	Benefits  string `json:"benefits" yaml:"benefits"`
	Timeline  string `json:"timeline" yaml:"timeline"`
	Expertise string `json:"expertise" yaml:"expertise"`
}

// Compose renders all sections for a page. city and category are the slugs
// used for the seed key; cityName and categoryName are the display values
// substituted into the text.
func Compose(city, category, locale, cityName, categoryName string) Composition {
	table := TableFor(locale)
	h := Hash(Key(city, category, locale))
	seed := int(Abs(h))

	render := func(section string) string {
		v, ok := Select(table[section], seed)
		if !ok {
			return ""
		}
		return v.Render(cityName, categoryName)
	}

	return Composition{
		Locale:    ResolveLocale(locale),
		Seed:      h,
		Headline:  render(SectionHeadline),
		Intro:     render(SectionIntro),
		Benefits:  render(SectionBenefits),
		Timeline:  render(SectionTimeline),
		Expertise: render(SectionExpertise),
	}
}
