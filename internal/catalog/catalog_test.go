package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"São Paulo", "sao-paulo"},
		{"München", "munchen"},
		{"Île-de-France", "ile-de-france"},
		{"New York City", "new-york-city"},
		{"  --Web   Design!! ", "web-design"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "New York", Title("new-york"))
	assert.Equal(t, "Seo", Title("seo"))
}

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	for _, l := range c.Locations {
		assert.Equal(t, Slugify(l.CityName), l.City)
	}
}

func TestExpand_Order(t *testing.T) {
	c := Default()
	triples := c.Expand([]string{"en", "es"})
	require.Len(t, triples, 2*len(c.Locations)*len(c.Categories))

	assert.Equal(t, "en", triples[0].Locale)
	assert.Equal(t, c.Locations[0].City, triples[0].Location.City)
	assert.Equal(t, c.Categories[1].Slug, triples[1].Category.Slug)
	assert.Equal(t, "es", triples[len(triples)-1].Locale)
}

func TestSiblings(t *testing.T) {
	c := Default()
	austin, ok := c.Location("united-states", "austin")
	require.True(t, ok)

	sibs := c.Siblings(austin)
	require.Len(t, sibs, 2)
	assert.Equal(t, "dallas", sibs[0].City)
	assert.Equal(t, "houston", sibs[1].City)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
locations:
  - country: portugal
    state_name: Lisboa
    city_name: Lisboa
categories:
  - names:
      en: Logo Design
    price_min: 300
    price_max: 900
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Locations, 1)
	assert.Equal(t, "lisboa", c.Locations[0].City)
	assert.Equal(t, "lisboa", c.Locations[0].State)
	assert.Equal(t, "Portugal", c.Locations[0].CountryName)
	assert.Equal(t, "logo-design", c.Categories[0].Slug)
	assert.Equal(t, "Logo Design", c.Categories[0].Name("fr"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locations: []\n"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "no locations")

	tests := []struct {
		name string
		data string
	}{
		{"state with space", `
locations:
  - country: united-states
    state: new york
    city: buffalo
categories:
  - slug: seo
`},
		{"city with slash", `
locations:
  - country: united-states
    state: new-york
    city: New York/Manhattan
categories:
  - slug: seo
`},
		{"country with capitals", `
locations:
  - country: United-States
    state: texas
    city: austin
categories:
  - slug: seo
`},
		{"category with slash", `
locations:
  - country: united-states
    state: texas
    city: austin
categories:
  - slug: web/design
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))
			_, err := Load(path)
			assert.ErrorContains(t, err, "not URL-safe")
		})
	}
}

func TestValidate_RejectsNonSlugSegments(t *testing.T) {
	c := Default()
	c.Locations[0].State = "Texas"
	assert.ErrorContains(t, c.Validate(), `slug "Texas"`)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, len(Default().Locations), len(c.Locations))
}
