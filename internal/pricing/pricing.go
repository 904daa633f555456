// Package pricing derives stable, per-page price ranges from category base
// prices.
package pricing

import (
	"math"

	"golang.org/x/text/message"

	"github.com/romangod6/pseo-builder/internal/variation"
)

const (
	// OffsetSteps bounds the seed-derived offset to [0, OffsetSteps).
	OffsetSteps = 11
	// OffsetStep is the USD size of one offset step.
	OffsetStep = 50
	// roundTo is applied after currency conversion.
	roundTo = 10
)

// Range is a USD base range for a category.
type Range struct {
	Min int64 `json:"min" yaml:"min"`
	Max int64 `json:"max" yaml:"max"`
}

// PriceRange is a localized price range. Min <= Max always holds.
type PriceRange struct {
	Min       int64  `json:"min" yaml:"min"`
	Max       int64  `json:"max" yaml:"max"`
	Currency  string `json:"currency" yaml:"currency"`
	Symbol    string `json:"symbol" yaml:"symbol"`
	Formatted string `json:"formatted" yaml:"formatted"`
}

// Offset is the USD amount added to both bounds for a seed.
func Offset(seed int32) int64 {
	return (variation.Abs(seed) % OffsetSteps) * OffsetStep
}

// Synthesize shifts base by the seed offset, converts it into the market
// currency and formats it for the locale.
func Synthesize(base Range, seed int32, country, locale string) PriceRange {
	lo, hi := base.Min, base.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	off := Offset(seed)
	cur := Lookup(country, locale)

	pr := PriceRange{
		Min:      convert(lo+off, cur),
		Max:      convert(hi+off, cur),
		Currency: cur.Code,
		Symbol:   cur.Symbol,
	}
	pr.Formatted = Format(pr, locale)
	return pr
}

// ForPage hashes the page key and synthesizes its price range.
func ForPage(base Range, city, category, country, locale string) PriceRange {
	return Synthesize(base, variation.Hash(variation.Key(city, category, locale)), country, locale)
}

// Format renders "{symbol}{min} - {symbol}{max}" with locale digit grouping.
func Format(pr PriceRange, locale string) string {
	p := message.NewPrinter(Tag(locale))
	return p.Sprintf("%s%d - %s%d", pr.Symbol, pr.Min, pr.Symbol, pr.Max)
}

// convert is monotonic non-decreasing in amount, which keeps min <= max.
func convert(amount int64, cur Currency) int64 {
	rate := cur.PerUSD
	if rate <= 0 {
		rate = 1
	}
	v := math.Round(float64(amount)*rate/roundTo) * roundTo
	return int64(v)
}
