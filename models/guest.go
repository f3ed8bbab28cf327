package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"hotel-reservation/apperror"
	"hotel-reservation/patch"
)

type Guest struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	CPF       CPF       `gorm:"type:varchar(11);not null;uniqueIndex"`
	Email     Email     `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func NewGuest(firstName, lastName, cpf, email string, clk clockwork.Clock) (*Guest, error) {
	var c apperror.Collector
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	checkName(&c, "firstName", firstName)
	checkName(&c, "lastName", lastName)

	doc, err := NewCPF(cpf)
	c.Merge(err)
	addr, err := NewEmail(email)
	c.Merge(err)

	if err := c.Err(); err != nil {
		return nil, err
	}

	now := clk.Now()
	return &Guest{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		CPF:       doc,
		Email:     addr,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func checkName(c *apperror.Collector, field, v string) {
	n := utf8.RuneCountInString(v)
	switch {
	case n == 0:
		c.Add(field, "is required")
	case n < 2:
		c.Add(field, "must have at least 2 characters")
	case n > 100:
		c.Add(field, "must have at most 100 characters")
	}
}

func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// GuestPatch covers the mutable guest fields; the CPF never changes.
type GuestPatch struct {
	FirstName patch.Field[string] `json:"firstName"`
	LastName  patch.Field[string] `json:"lastName"`
	Email     patch.Field[string] `json:"email"`
}

func (g *Guest) Update(p GuestPatch, clk clockwork.Clock) error {
	var c apperror.Collector
	next := *g

	if p.FirstName.IsNull() {
		c.Add("firstName", "cannot be cleared")
	} else if v, ok := p.FirstName.Get(); ok {
		next.FirstName = strings.TrimSpace(v)
		checkName(&c, "firstName", next.FirstName)
	}
	if p.LastName.IsNull() {
		c.Add("lastName", "cannot be cleared")
	} else if v, ok := p.LastName.Get(); ok {
		next.LastName = strings.TrimSpace(v)
		checkName(&c, "lastName", next.LastName)
	}
	if p.Email.IsNull() {
		c.Add("email", "cannot be cleared")
	} else if v, ok := p.Email.Get(); ok {
		addr, err := NewEmail(v)
		if err == nil {
			next.Email = addr
		}
		c.Merge(err)
	}

	if err := c.Err(); err != nil {
		return err
	}
	next.UpdatedAt = clk.Now()
	*g = next
	return nil
}
