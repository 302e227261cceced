// Package currency maps the supported currency codes to display symbols and
// formats amounts for that currency. Formatting is display-only: stored
// amounts are currency-agnostic numbers and no conversion ever happens here.
package currency

import (
	"github.com/Rhymond/go-money"
)

// Code is one of the supported ISO 4217 currency codes.
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	CAD Code = "CAD"
	AUD Code = "AUD"
	CHF Code = "CHF"
	CNY Code = "CNY"
	INR Code = "INR"
	KRW Code = "KRW"
	MXN Code = "MXN"
	BRL Code = "BRL"
)

// Codes lists every supported currency in menu order.
var Codes = []Code{USD, EUR, GBP, JPY, CAD, AUD, CHF, CNY, INR, KRW, MXN, BRL}

type info struct {
	symbol string
	locale string
}

var registry = map[Code]info{
	USD: {"$", "en-US"},
	EUR: {"€", "de-DE"},
	GBP: {"£", "en-GB"},
	JPY: {"¥", "ja-JP"},
	CAD: {"$", "en-CA"},
	AUD: {"$", "en-AU"},
	CHF: {"Fr", "de-CH"},
	CNY: {"¥", "zh-CN"},
	INR: {"₹", "en-IN"},
	KRW: {"₩", "ko-KR"},
	MXN: {"$", "es-MX"},
	BRL: {"R$", "pt-BR"},
}

// Parse maps an identifier to a Code, falling back to USD for anything not in
// the registry. The fallback mirrors the persisted-state default.
func Parse(s string) Code {
	c := Code(s)
	if _, ok := registry[c]; ok {
		return c
	}
	return USD
}

// Symbol returns the display symbol for a code ("$" for unknown codes).
func Symbol(c Code) string {
	if i, ok := registry[c]; ok {
		return i.symbol
	}
	return "$"
}

// Locale returns the BCP 47 locale tag associated with a code. It documents
// the grouping/decimal conventions the formatter follows.
func Locale(c Code) string {
	if i, ok := registry[c]; ok {
		return i.locale
	}
	return registry[USD].locale
}

// Format renders an amount as a localized currency string, e.g. "$1,234.50"
// for USD and "¥1,235" for JPY. The numeric value itself is untouched; only
// symbol, grouping and fraction digits differ between currencies.
func Format(c Code, amount float64) string {
	return money.NewFromFloat(amount, string(Parse(string(c)))).Display()
}

// FormatterFor returns a formatting closure bound to one currency, for
// callers that take a plain value formatter.
func FormatterFor(c Code) func(float64) string {
	return func(v float64) string { return Format(c, v) }
}
