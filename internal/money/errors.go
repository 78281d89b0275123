package money

import "errors"

var (
	ErrCurrencyInvalid = errors.New("not a valid ISO 4217 currency code")
	ErrLanguageInvalid = errors.New("not a valid language tag")
)
