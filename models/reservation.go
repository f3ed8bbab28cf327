package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"hotel-reservation/apperror"
	"hotel-reservation/patch"
)

// Reservation references a room and a guest without owning them. It is never
// deleted; it ends in FINALIZED or CANCELLED.
type Reservation struct {
	ID        string            `gorm:"type:char(36);primaryKey"`
	RoomID    string            `gorm:"type:char(36);not null;index"`
	Room      *Room             `gorm:"foreignKey:RoomID;constraint:OnDelete:RESTRICT"`
	GuestID   string            `gorm:"type:char(36);not null;index"`
	Guest     *Guest            `gorm:"foreignKey:GuestID;constraint:OnDelete:RESTRICT"`
	CheckIn   datatypes.Date    `gorm:"not null"`
	CheckOut  datatypes.Date    `gorm:"not null"`
	Total     decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Status    ReservationStatus `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time         `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime:false"`
}

// CivilDate drops the time of day, keeping the calendar date as seen in t's location.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsBetween counts whole days from checkIn to checkOut.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(CivilDate(checkOut).Sub(CivilDate(checkIn)).Hours() / 24)
}

// NewReservation starts a PENDING reservation priced at room price × nights.
func NewReservation(room *Room, guest *Guest, checkIn, checkOut time.Time, clk clockwork.Clock) (*Reservation, error) {
	var c apperror.Collector
	if room == nil {
		c.Add("roomId", "is required")
	}
	if guest == nil {
		c.Add("guestId", "is required")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	now := clk.Now()
	res := &Reservation{
		ID:        uuid.NewString(),
		RoomID:    room.ID,
		Room:      room,
		GuestID:   guest.ID,
		Guest:     guest,
		CheckIn:   datatypes.Date(CivilDate(checkIn)),
		CheckOut:  datatypes.Date(CivilDate(checkOut)),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res.Total = room.ComputeTotal(res.Nights())
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Reservation) CheckInDate() time.Time  { return CivilDate(time.Time(r.CheckIn)) }
func (r *Reservation) CheckOutDate() time.Time { return CivilDate(time.Time(r.CheckOut)) }

func (r *Reservation) Nights() int {
	return NightsBetween(r.CheckInDate(), r.CheckOutDate())
}

func (r *Reservation) Validate() error {
	var c apperror.Collector
	if r.Room == nil && r.RoomID == "" {
		c.Add("roomId", "is required")
	}
	if r.Guest == nil && r.GuestID == "" {
		c.Add("guestId", "is required")
	}
	if !r.CheckOutDate().After(r.CheckInDate()) {
		c.Add("checkOut", "must be after check-in")
	}
	if !r.Total.IsPositive() {
		c.Add("total", "must be greater than zero")
	}
	if !r.Status.Valid() {
		c.Add("status", "unknown status")
	}
	return c.Err()
}

func (r *Reservation) transition(from, to ReservationStatus, clk clockwork.Clock, msg string) error {
	if r.Status != from {
		return apperror.Business("%s (current status %s)", msg, r.Status)
	}
	r.Status = to
	r.UpdatedAt = clk.Now()
	return nil
}

func (r *Reservation) Confirm(clk clockwork.Clock) error {
	return r.transition(StatusPending, StatusConfirmed, clk, "only pending reservations can be confirmed")
}

func (r *Reservation) CheckInGuest(clk clockwork.Clock) error {
	return r.transition(StatusConfirmed, StatusInProgress, clk, "only confirmed reservations can check in")
}

func (r *Reservation) CheckOutGuest(clk clockwork.Clock) error {
	return r.transition(StatusInProgress, StatusFinalized, clk, "only reservations in progress can check out")
}

func (r *Reservation) Cancel(clk clockwork.Clock) error {
	if r.Status.IsTerminal() {
		return apperror.Business("reservation cannot be cancelled (current status %s)", r.Status)
	}
	r.Status = StatusCancelled
	r.UpdatedAt = clk.Now()
	return nil
}

func (r *Reservation) CanBeModified() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// ReservationChanges lists the fields an update may replace. The total is
// normally recomputed by the caller from the room price.
type ReservationChanges struct {
	Room     patch.Field[*Room]
	Guest    patch.Field[*Guest]
	CheckIn  patch.Field[time.Time]
	CheckOut patch.Field[time.Time]
	Total    patch.Field[decimal.Decimal]
}

func (r *Reservation) Update(ch ReservationChanges, clk clockwork.Clock) error {
	if !r.CanBeModified() {
		return apperror.Business("reservation can no longer be modified (current status %s)", r.Status)
	}

	var c apperror.Collector
	next := *r

	if ch.Room.IsNull() {
		c.Add("roomId", "cannot be cleared")
	} else if room, ok := ch.Room.Get(); ok {
		if room == nil {
			c.Add("roomId", "is required")
		} else {
			next.Room, next.RoomID = room, room.ID
		}
	}
	if ch.Guest.IsNull() {
		c.Add("guestId", "cannot be cleared")
	} else if guest, ok := ch.Guest.Get(); ok {
		if guest == nil {
			c.Add("guestId", "is required")
		} else {
			next.Guest, next.GuestID = guest, guest.ID
		}
	}
	if ch.CheckIn.IsNull() {
		c.Add("checkIn", "cannot be cleared")
	} else if d, ok := ch.CheckIn.Get(); ok {
		next.CheckIn = datatypes.Date(CivilDate(d))
	}
	if ch.CheckOut.IsNull() {
		c.Add("checkOut", "cannot be cleared")
	} else if d, ok := ch.CheckOut.Get(); ok {
		next.CheckOut = datatypes.Date(CivilDate(d))
	}
	if ch.Total.IsNull() {
		c.Add("total", "cannot be cleared")
	} else if t, ok := ch.Total.Get(); ok {
		next.Total = t
	}

	if err := c.Err(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = clk.Now()
	*r = next
	return nil
}
