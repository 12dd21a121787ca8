package validation

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the wire format of date inputs (<input type="date">).
const DateLayout = "2006-01-02"

// Violations maps a form field name to a message code. Codes are translated by i18n.T.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already has a violation.
func (v Violations) Add(field, code string) {
	if _, exists := v[field]; !exists {
		v[field] = code
	}
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
	}
}

func MaxLength(field, value string, max int, v Violations) {
	if utf8.RuneCountInString(value) > max {
		v.Add(field, "too_long")
	}
}

// Email checks the address syntax. Empty values are left to Required.
func Email(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.Add(field, "invalid_email")
	}
}

// Date parses an optional YYYY-MM-DD value. An empty value yields nil without a violation.
func Date(field, value string, v Violations) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		v.Add(field, "invalid_date")
		return nil
	}
	return &t
}
