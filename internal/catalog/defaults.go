package catalog

import "github.com/romangod6/pseo-builder/internal/models"

func loc(country, countryName, state, stateName, cityName string) models.Location {
	return models.Location{
		Country:     country,
		CountryName: countryName,
		State:       state,
		StateName:   stateName,
		City:        Slugify(cityName),
		CityName:    cityName,
	}
}

// Default returns the built-in dataset.
func Default() *Catalog {
	return &Catalog{
		Locations: []models.Location{
			loc("united-states", "United States", "texas", "Texas", "Austin"),
			loc("united-states", "United States", "texas", "Texas", "Dallas"),
			loc("united-states", "United States", "texas", "Texas", "Houston"),
			loc("united-states", "United States", "california", "California", "San Francisco"),
			loc("united-states", "United States", "california", "California", "Los Angeles"),
			loc("united-states", "United States", "california", "California", "San Diego"),
			loc("united-states", "United States", "new-york", "New York", "New York City"),
			loc("united-states", "United States", "new-york", "New York", "Buffalo"),
			loc("united-kingdom", "United Kingdom", "england", "England", "London"),
			loc("united-kingdom", "United Kingdom", "england", "England", "Manchester"),
			loc("united-kingdom", "United Kingdom", "scotland", "Scotland", "Edinburgh"),
			loc("canada", "Canada", "ontario", "Ontario", "Toronto"),
			loc("canada", "Canada", "ontario", "Ontario", "Ottawa"),
			loc("canada", "Canada", "quebec", "Quebec", "Montréal"),
			loc("australia", "Australia", "new-south-wales", "New South Wales", "Sydney"),
			loc("australia", "Australia", "victoria", "Victoria", "Melbourne"),
			loc("germany", "Germany", "bavaria", "Bavaria", "München"),
			loc("germany", "Germany", "berlin", "Berlin", "Berlin"),
			loc("france", "France", "ile-de-france", "Île-de-France", "Paris"),
			loc("spain", "Spain", "catalonia", "Catalonia", "Barcelona"),
			loc("spain", "Spain", "madrid", "Madrid", "Madrid"),
			loc("brazil", "Brazil", "sao-paulo", "São Paulo", "São Paulo"),
			loc("brazil", "Brazil", "rio-de-janeiro", "Rio de Janeiro", "Rio de Janeiro"),
			loc("mexico", "Mexico", "jalisco", "Jalisco", "Guadalajara"),
			loc("india", "India", "karnataka", "Karnataka", "Bengaluru"),
		},
		Categories: []models.Category{
			{
				Slug:     "web-design",
				Names:    map[string]string{"en": "Web Design", "es": "Diseño Web", "fr": "Conception Web", "de": "Webdesign"},
				PriceMin: 2000,
				PriceMax: 8000,
			},
			{
				Slug:     "web-development",
				Names:    map[string]string{"en": "Web Development", "es": "Desarrollo Web", "fr": "Développement Web", "de": "Webentwicklung"},
				PriceMin: 5000,
				PriceMax: 25000,
			},
			{
				Slug:     "seo",
				Names:    map[string]string{"en": "SEO", "es": "Posicionamiento SEO", "fr": "Référencement SEO", "de": "Suchmaschinenoptimierung"},
				PriceMin: 800,
				PriceMax: 3500,
			},
			{
				Slug:     "ecommerce",
				Names:    map[string]string{"en": "E-commerce Development", "es": "Tiendas Online", "fr": "Site E-commerce", "de": "Onlineshop-Entwicklung"},
				PriceMin: 6000,
				PriceMax: 30000,
			},
			{
				Slug:     "branding",
				Names:    map[string]string{"en": "Branding", "es": "Branding", "fr": "Image de Marque", "de": "Markenentwicklung"},
				PriceMin: 1500,
				PriceMax: 9000,
			},
			{
				Slug:     "ppc-advertising",
				Names:    map[string]string{"en": "PPC Advertising", "es": "Publicidad PPC", "fr": "Publicité PPC", "de": "PPC-Werbung"},
				PriceMin: 1000,
				PriceMax: 5000,
			},
		},
	}
}
