package models

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"

	"hotel-reservation/apperror"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a trimmed, lower-cased address of the form local@domain.tld.
type Email struct {
	address string
}

func NewEmail(raw string) (Email, error) {
	addr := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(addr) {
		return Email{}, apperror.Validation("email", "invalid e-mail")
	}
	return Email{address: addr}, nil
}

func (e Email) String() string { return e.address }

func (e Email) Value() (driver.Value, error) {
	return e.address, nil
}

func (e *Email) Scan(src any) error {
	switch v := src.(type) {
	case string:
		e.address = v
	case []byte:
		e.address = string(v)
	case nil:
		e.address = ""
	default:
		return fmt.Errorf("email: cannot scan %T", src)
	}
	return nil
}
