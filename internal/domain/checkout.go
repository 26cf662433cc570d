package domain

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLen       = 50
	maxEmailLen      = 254
	maxAddressLen    = 250
	maxPostalCodeLen = 20
	maxCityLen       = 100
)

// CheckoutForm — типизированные данные формы оформления заказа.
type CheckoutForm struct {
	FirstName  string
	LastName   string
	Email      string
	Address    string
	PostalCode string
	City       string
}

// Normalize убирает краевые пробелы во всех полях.
func (f CheckoutForm) Normalize() CheckoutForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.City = strings.TrimSpace(f.City)
	return f
}

// Validate проверяет форму и возвращает замечания по полям,
// либо nil, если форма корректна.
func (f CheckoutForm) Validate() *ValidationError {
	verr := NewValidationError()

	checkRequired(verr, "first_name", f.FirstName, maxNameLen)
	checkRequired(verr, "last_name", f.LastName, maxNameLen)
	checkRequired(verr, "address", f.Address, maxAddressLen)
	checkRequired(verr, "postal_code", f.PostalCode, maxPostalCodeLen)
	checkRequired(verr, "city", f.City, maxCityLen)

	switch {
	case f.Email == "":
		verr.Add("email", "this field is required")
	case utf8.RuneCountInString(f.Email) > maxEmailLen:
		verr.Add("email", "value is too long")
	default:
		if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != f.Email {
			verr.Add("email", "enter a valid email address")
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

func checkRequired(verr *ValidationError, field, value string, maxLen int) {
	switch {
	case value == "":
		verr.Add(field, "this field is required")
	case utf8.RuneCountInString(value) > maxLen:
		verr.Add(field, "value is too long")
	}
}
