package pricing

import "golang.org/x/text/language"

// Currency describes how USD base prices are shown in a market.
type Currency struct {
	Code   string
	Symbol string
	// PerUSD converts a USD amount into this currency. Always > 0.
	PerUSD float64
}

// DefaultCurrency is used when neither country nor locale resolve.
var DefaultCurrency = Currency{Code: "USD", Symbol: "$", PerUSD: 1}

var (
	usd = DefaultCurrency
	gbp = Currency{Code: "GBP", Symbol: "£", PerUSD: 0.79}
	eur = Currency{Code: "EUR", Symbol: "€", PerUSD: 0.92}
	cad = Currency{Code: "CAD", Symbol: "CA$", PerUSD: 1.36}
	aud = Currency{Code: "AUD", Symbol: "A$", PerUSD: 1.52}
	nzd = Currency{Code: "NZD", Symbol: "NZ$", PerUSD: 1.64}
	brl = Currency{Code: "BRL", Symbol: "R$", PerUSD: 5.0}
	mxn = Currency{Code: "MXN", Symbol: "MX$", PerUSD: 17.0}
	inr = Currency{Code: "INR", Symbol: "₹", PerUSD: 83.0}
	jpy = Currency{Code: "JPY", Symbol: "¥", PerUSD: 150.0}
	chf = Currency{Code: "CHF", Symbol: "CHF ", PerUSD: 0.88}
	sgd = Currency{Code: "SGD", Symbol: "S$", PerUSD: 1.34}
	zar = Currency{Code: "ZAR", Symbol: "R", PerUSD: 18.5}
)

var byCountry = map[string]Currency{
	"united-states":  usd,
	"united-kingdom": gbp,
	"ireland":        eur,
	"germany":        eur,
	"france":         eur,
	"spain":          eur,
	"italy":          eur,
	"netherlands":    eur,
	"belgium":        eur,
	"austria":        eur,
	"portugal":       eur,
	"canada":         cad,
	"australia":      aud,
	"new-zealand":    nzd,
	"brazil":         brl,
	"mexico":         mxn,
	"india":          inr,
	"japan":          jpy,
	"switzerland":    chf,
	"singapore":      sgd,
	"south-africa":   zar,
}

var byLocale = map[string]Currency{
	"en": usd,
	"es": eur,
	"fr": eur,
	"de": eur,
	"pt": brl,
	"ja": jpy,
}

// Lookup resolves the currency for a country, then the locale, then the
// default entry. It never fails.
func Lookup(country, locale string) Currency {
	if c, ok := byCountry[country]; ok {
		return c
	}
	if c, ok := byLocale[baseLanguage(locale)]; ok {
		return c
	}
	return DefaultCurrency
}

func baseLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	base, _ := tag.Base()
	return base.String()
}

// Tag returns the language tag used for number formatting, English when the
// locale does not parse.
func Tag(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}
