package domain

import "fmt"

// allowedCurrencies is the fixed set of codes accounts can be opened in.
var allowedCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
	"PLN": true,
}

// Currency is a value object wrapping a validated ISO-style code.
// The zero value is invalid; always construct through NewCurrency.
type Currency struct {
	code string
}

// NewCurrency validates the code against the allow-list.
// Codes are case-sensitive: "usd" is rejected.
func NewCurrency(code string) (Currency, error) {
	if !allowedCurrencies[code] {
		return Currency{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return Currency{code: code}, nil
}

func (c Currency) Code() string {
	return c.code
}

// Equals compares by code, nothing else.
func (c Currency) Equals(other Currency) bool {
	return c.code == other.code
}
