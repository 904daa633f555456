// Package variation picks pre-authored phrasings for generated pages.
//
// Selection is keyed on (city, category, locale) so that a page renders the
// same text on every build while neighbouring pages get different wording.
package variation

import "unicode/utf16"

// KeySeparator joins the parts of a seed key.
const KeySeparator = "|"

// Key builds the seed key for a page.
func Key(city, category, locale string) string {
	return city + KeySeparator + category + KeySeparator + locale
}

// Hash is the 31-multiplier string hash over UTF-16 code units with 32-bit
// wraparound. Content that has already been published was selected with this
// exact function, so the arithmetic must stay in int32.
func Hash(key string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(key)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// Abs returns |h| widened to int64 so that MinInt32 does not overflow.
func Abs(h int32) int64 {
	v := int64(h)
	if v < 0 {
		return -v
	}
	return v
}

// Seed maps a page to an index in [0, n). n <= 0 yields 0.
func Seed(city, category, locale string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Abs(Hash(Key(city, category, locale))) % int64(n))
}
