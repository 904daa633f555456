package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/romangod6/pseo-builder/internal/pricing"
)

// Frontmatter is the YAML header of a generated MDX file.
type Frontmatter struct {
	Title        string             `yaml:"title"`
	Description  string             `yaml:"description"`
	Locale       string             `yaml:"locale"`
	Country      string             `yaml:"country"`
	State        string             `yaml:"state"`
	City         string             `yaml:"city"`
	Category     string             `yaml:"category"`
	CountryName  string             `yaml:"countryName"`
	StateName    string             `yaml:"stateName"`
	CityName     string             `yaml:"cityName"`
	CategoryName string             `yaml:"categoryName"`
	Tier         string             `yaml:"tier"`
	Seed         int32              `yaml:"seed"`
	Price        pricing.PriceRange `yaml:"price"`
	Related      []Link             `yaml:"related,omitempty"`
}

// Frontmatter returns the header fields of the page.
func (p Page) Frontmatter() Frontmatter {
	return Frontmatter{
		Title:        p.Text.Headline,
		Description:  p.Text.Intro,
		Locale:       p.Route.Locale,
		Country:      p.Route.Country,
		State:        p.Route.State,
		City:         p.Route.City,
		Category:     p.Route.Category,
		CountryName:  p.CountryName,
		StateName:    p.StateName,
		CityName:     p.CityName,
		CategoryName: p.CategoryName,
		Tier:         p.Tier.String(),
		Seed:         p.Text.Seed,
		Price:        p.Price,
		Related:      p.Related,
	}
}

// Body renders the markdown part of the page.
func (p Page) Body() string {
	lf := labelsFor(p.Text.Locale)

	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", p.Text.Headline, p.Text.Intro)
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", lf.Benefits, p.Text.Benefits)
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", lf.Timeline, p.Text.Timeline)
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", lf.Expertise, p.Text.Expertise)
	fmt.Fprintf(&b, "## %s\n\n%s\n", lf.Pricing, p.Price.Formatted)

	if len(p.Related) > 0 {
		fmt.Fprintf(&b, "\n## %s\n\n", lf.Related)
		for _, l := range p.Related {
			fmt.Fprintf(&b, "- [%s](%s)\n", l.Title, l.Href)
		}
	}
	return b.String()
}

// Render produces the complete MDX document.
func (p Page) Render() ([]byte, error) {
	fm, err := yaml.Marshal(p.Frontmatter())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter for %s: %w", p.Route.Path(), err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(p.Body())
	return b.Bytes(), nil
}

// ParseFrontmatter reads the YAML header of an MDX document.
func ParseFrontmatter(doc []byte) (Frontmatter, error) {
	var fm Frontmatter
	rest, ok := bytes.CutPrefix(doc, []byte("---\n"))
	if !ok {
		return fm, fmt.Errorf("document has no frontmatter")
	}
	header, _, ok := bytes.Cut(rest, []byte("\n---\n"))
	if !ok {
		return fm, fmt.Errorf("unterminated frontmatter")
	}
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return fm, nil
}
