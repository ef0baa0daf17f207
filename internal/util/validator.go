package util

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmount bounds budgets and prices to what a decimal(10,0) column holds.
var maxAmount = decimal.New(1, 10)

// ValidateAmount checks a budget or price: not negative and below the column limit.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative, got %s", amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ValidateEmail checks a bare address such as "a@b.com".
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

const passwordSpecials = "!@#$%^&*()"

// ValidatePassword requires 8-20 characters drawn from letters, digits,
// underscore and !@#$%^&*(), with at least one digit, one upper case
// letter, one lower case letter and one special character.
func ValidatePassword(pwd string) error {
	if len(pwd) < 8 || len(pwd) > 20 {
		return fmt.Errorf("password must be 8-20 characters")
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, ch := range pwd {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, ch):
			hasSpecial = true
		case ch == '_':
		default:
			return fmt.Errorf("password contains unsupported character %q", ch)
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("password needs upper and lower case letters, a digit and one of %s", passwordSpecials)
	}
	return nil
}

// ValidateName checks a book, category or nickname length.
func ValidateName(name string, max int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is empty")
	}
	if len([]rune(name)) > max {
		return fmt.Errorf("name too long, max %d characters", max)
	}
	return nil
}
