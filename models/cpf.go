package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"hotel-reservation/apperror"
)

// CPF is a validated Brazilian taxpayer id, kept as its 11 digits.
type CPF struct {
	digits string
}

// NewCPF strips every non-digit from raw and checks length, repeated digits
// and both check digits.
func NewCPF(raw string) (CPF, error) {
	digits := onlyDigits(raw)
	if !validCPF(digits) {
		return CPF{}, apperror.Validation("cpf", "invalid CPF")
	}
	return CPF{digits: digits}, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validCPF(d string) bool {
	if len(d) != 11 {
		return false
	}
	if strings.Count(d, d[:1]) == 11 {
		return false
	}
	return int(d[9]-'0') == cpfCheckDigit(d[:9]) && int(d[10]-'0') == cpfCheckDigit(d[:10])
}

// cpfCheckDigit weights the digits from len+1 down to 2.
func cpfCheckDigit(d string) int {
	sum := 0
	weight := len(d) + 1
	for i := 0; i < len(d); i++ {
		sum += int(d[i]-'0') * weight
		weight--
	}
	digit := 11 - sum%11
	if digit >= 10 {
		return 0
	}
	return digit
}

func (c CPF) String() string { return c.digits }

func (c CPF) IsZero() bool { return c.digits == "" }

// Formatted renders XXX.XXX.XXX-XX.
func (c CPF) Formatted() string {
	if len(c.digits) != 11 {
		return c.digits
	}
	d := c.digits
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

func (c CPF) Value() (driver.Value, error) {
	return c.digits, nil
}

func (c *CPF) Scan(src any) error {
	switch v := src.(type) {
	case string:
		c.digits = v
	case []byte:
		c.digits = string(v)
	case nil:
		c.digits = ""
	default:
		return fmt.Errorf("cpf: cannot scan %T", src)
	}
	return nil
}
