package models

// Currency represents a row in the currencies table.
type Currency struct {
	CurrencyCode string `db:"currency_code"` // Primary Key (e.g., "USD")
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
	Precision    int    `db:"precision"` // Minor-unit digits used when rounding converted amounts
	AuditFields
}
