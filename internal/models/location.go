package models

// Location is one city in the catalog. Slug fields form URL segments.
type Location struct {
	Country     string `json:"country" yaml:"country"`
	CountryName string `json:"country_name" yaml:"country_name"`
	State       string `json:"state" yaml:"state"`
	StateName   string `json:"state_name" yaml:"state_name"`
	City        string `json:"city" yaml:"city"`
	CityName    string `json:"city_name" yaml:"city_name"`
}

// Category is a service offered on every location page.
type Category struct {
	Slug string `json:"slug" yaml:"slug"`
	// Names holds display names per locale; "en" is the fallback.
	Names    map[string]string `json:"names" yaml:"names"`
	PriceMin int64             `json:"price_min" yaml:"price_min"`
	PriceMax int64             `json:"price_max" yaml:"price_max"`
}

// Name returns the display name for locale, falling back to English and
// then to the slug.
func (c Category) Name(locale string) string {
	if n, ok := c.Names[locale]; ok && n != "" {
		return n
	}
	if n, ok := c.Names["en"]; ok && n != "" {
		return n
	}
	return c.Slug
}
