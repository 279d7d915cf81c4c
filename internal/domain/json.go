package domain

import "github.com/shopspring/decimal"

// Persisted documents carry amounts as JSON numbers. decimal's default
// encoder quotes them, which other writers and readers of the shared
// document do not accept.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
