package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	reUser = regexp.MustCompile(`^[A-Za-z0-9._@+-]{1,64}$`)
	reCode = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	v = validator.New(validator.WithRequiredStructEnabled())
)

// Struct runs the `validate` tags of an input struct and returns a
// flattened list of "Field: rule" problems.
func Struct(s any) []string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			out = append(out, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			out = append(out, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return out
}

// ID validates a positive integer resource identifier.
func ID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// OptionalID is ID for optional foreign-key filters: blank means 0.
func OptionalID(s string) (int, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, true
	}
	return ID(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// UserName validates the login name format.
func UserName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUser.MatchString(s)
}

// Password only enforces a length window; the store API owns the rules.
func Password(s string) bool {
	l := len(strings.TrimSpace(s))
	return l >= 1 && l <= 128
}

// Code validates a product article code.
func Code(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCode.MatchString(s)
}

// Price parses a non-negative money amount.
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// Qty parses a stock quantity, clamping garbage to 0.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Bool reads an html checkbox value.
func Bool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
