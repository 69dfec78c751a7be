package utils

import (
	"fmt"
	"regexp"
	"time"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	controlRegex = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// MaxBillAmount is the largest amount accepted on a bill, in euros.
// The new bill form binding in internal/interfaces/http uses the same bound.
const MaxBillAmount = 100000

// ValidateAmount validates a bill amount in euros
func ValidateAmount(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %d", amount)
	}

	if amount > MaxBillAmount {
		return fmt.Errorf("amount exceeds maximum limit: %d", amount)
	}

	return nil
}

// ValidatePct validates a reimbursement rate; zero means the default rate
func ValidatePct(pct int) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("pct must be between 0 and 100: %d", pct)
	}
	return nil
}

// ValidateDate validates a YYYY-MM-DD date
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date, expected YYYY-MM-DD: %s", date)
	}
	return nil
}

// SanitizeString removes control characters
func SanitizeString(s string) string {
	return controlRegex.ReplaceAllString(s, "")
}
