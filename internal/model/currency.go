package model

import (
	"errors"
	"strings"
)

const DefaultCurrency = "USD"

var ErrInvalidCurrency = errors.New("currency must be a three letter ISO 4217 code")

// NormalizeCurrency upper-cases an ISO 4217 code. An empty code yields fallback.
func NormalizeCurrency(code, fallback string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = fallback
	}
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return code, nil
}
