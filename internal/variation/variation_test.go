package variation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_KnownValues(t *testing.T) {
	tests := []struct {
		key  string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
		{"hello", 99162322},
		// wraps to exactly MinInt32
		{"polygenelubricants", math.MinInt32},
		// surrogate pair is hashed as two UTF-16 code units
		{"😀", 1772899},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(tt.key))
		})
	}
}

func TestHash_Collisions(t *testing.T) {
	assert.Equal(t, Hash("Aa"), Hash("BB"))
}

func TestAbs_MinInt32(t *testing.T) {
	assert.Equal(t, int64(2147483648), Abs(math.MinInt32))
	assert.Equal(t, int64(5), Abs(-5))
}

func TestSeed_Deterministic(t *testing.T) {
	a := Seed("austin", "web-design", "en", 7)
	b := Seed("austin", "web-design", "en", 7)
	assert.Equal(t, a, b)
}

func TestSeed_Bounded(t *testing.T) {
	cities := []string{"", "austin", "são-paulo", "zürich", "東京", "polygenelubricants"}
	categories := []string{"", "web-design", "seo", "branding"}
	for _, city := range cities {
		for _, category := range categories {
			for n := 1; n <= 13; n++ {
				got := Seed(city, category, "en", n)
				require.GreaterOrEqual(t, got, 0)
				require.Less(t, got, n)
			}
		}
	}
}

func TestSeed_EmptyAndZero(t *testing.T) {
	assert.Equal(t, 0, Seed("a", "b", "c", 0))
	assert.Equal(t, 0, Seed("a", "b", "c", -3))
	// "||" hashes to 124*31+124
	assert.Equal(t, int((124*31+124)%5), Seed("", "", "", 5))
}

func TestVariant_Render(t *testing.T) {
	lit := Literal("{category} in {city}, {city}")
	assert.False(t, lit.IsTemplate())
	assert.Equal(t, "SEO in Austin, Austin", lit.Render("Austin", "SEO"))

	tpl := Template(func(city, category string) string { return city + "/" + category })
	assert.True(t, tpl.IsTemplate())
	assert.Equal(t, "Austin/SEO", tpl.Render("Austin", "SEO"))
}

func TestSelect(t *testing.T) {
	list := []Variant{Literal("a"), Literal("b"), Literal("c")}

	v, ok := Select(list, 7)
	require.True(t, ok)
	assert.Equal(t, "b", v.Render("", ""))

	v, ok = Select(list, -1)
	require.True(t, ok)
	assert.Equal(t, "b", v.Render("", ""))

	v, ok = Select(list, math.MinInt)
	require.True(t, ok)
	assert.Equal(t, "c", v.Render("", ""))

	_, ok = Select(nil, 3)
	assert.False(t, ok)
}

func TestTables_EveryLocaleHasEverySection(t *testing.T) {
	for _, locale := range Locales() {
		table := TableFor(locale)
		for _, section := range Sections {
			assert.NotEmpty(t, table[section], "locale %s section %s", locale, section)
		}
	}
}

func TestResolveLocale(t *testing.T) {
	assert.Equal(t, "fr", ResolveLocale("fr"))
	assert.Equal(t, DefaultLocale, ResolveLocale("pt-br"))
}

func TestCompose(t *testing.T) {
	first := Compose("austin", "web-design", "en", "Austin", "Web Design")
	second := Compose("austin", "web-design", "en", "Austin", "Web Design")
	assert.Equal(t, first, second)

	assert.Equal(t, Hash("austin|web-design|en"), first.Seed)
	assert.Contains(t, first.Headline, "Austin")
	assert.NotEmpty(t, first.Intro)
	assert.NotEmpty(t, first.Benefits)
	assert.NotEmpty(t, first.Timeline)
	assert.NotEmpty(t, first.Expertise)

	idx := int(Abs(first.Seed)) % len(english[SectionIntro])
	assert.Equal(t, english[SectionIntro][idx].Render("Austin", "Web Design"), first.Intro)
}

func TestCompose_UnknownLocaleFallsBack(t *testing.T) {
	c := Compose("austin", "seo", "xx", "Austin", "SEO")
	assert.Equal(t, DefaultLocale, c.Locale)
	assert.NotEmpty(t, c.Headline)
}
