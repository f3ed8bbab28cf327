package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-reservation/apperror"
	"hotel-reservation/metrics"
	"hotel-reservation/models"
	"hotel-reservation/patch"
	"hotel-reservation/repository"
)

// ReservationService owns the booking rules. A room is bookable only while
// its availability is FREE; claiming it is a conditional update so two
// concurrent bookings cannot both succeed.
type ReservationService struct {
	DB       *gorm.DB
	Clock    clockwork.Clock
	Location *time.Location
}

func NewReservationService(db *gorm.DB, clk clockwork.Clock, loc *time.Location) *ReservationService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationService{DB: db, Clock: clk, Location: loc}
}

type ReservationInput struct {
	RoomID   string
	GuestID  string
	CheckIn  time.Time
	CheckOut time.Time
}

// ReservationPatch carries the fields a client may change on an open
// reservation. The total is always recomputed.
type ReservationPatch struct {
	RoomID   patch.Field[string]
	GuestID  patch.Field[string]
	CheckIn  patch.Field[time.Time]
	CheckOut patch.Field[time.Time]
}

func (s *ReservationService) today() time.Time {
	return models.CivilDate(s.Clock.Now().In(s.Location))
}

func (s *ReservationService) validateInput(in ReservationInput) error {
	var c apperror.Collector
	if in.RoomID == "" {
		c.Add("roomId", "is required")
	}
	if in.GuestID == "" {
		c.Add("guestId", "is required")
	}
	if in.CheckIn.IsZero() {
		c.Add("checkIn", "is required")
	}
	if in.CheckOut.IsZero() {
		c.Add("checkOut", "is required")
	}
	if !in.CheckIn.IsZero() && !in.CheckOut.IsZero() {
		if !models.CivilDate(in.CheckOut).After(models.CivilDate(in.CheckIn)) {
			c.Add("checkOut", "must be after check-in")
		}
		if models.CivilDate(in.CheckIn).Before(s.today()) {
			c.Add("checkIn", "must not be in the past")
		}
	}
	return c.Err()
}

func roomNotBookable(room *models.Room) error {
	metrics.ObserveBookingConflict()
	return apperror.Business("room %d is not available for booking", room.Number)
}

func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var res *models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := repository.NewRoomRepository(tx)
		room, err := rooms.FindByID(ctx, in.RoomID)
		if err != nil {
			return mapRepoError("find room", "room", in.RoomID, err)
		}
		guest, err := repository.NewGuestRepository(tx).LockByID(ctx, in.GuestID)
		if err != nil {
			return mapRepoError("find guest", "guest", in.GuestID, err)
		}
		if !room.CanBeBooked() {
			return roomNotBookable(room)
		}

		res, err = models.NewReservation(room, guest, in.CheckIn, in.CheckOut, s.Clock)
		if err != nil {
			return err
		}

		claimed, err := rooms.CompareAndSetAvailability(ctx, room.ID,
			models.AvailabilityFree, models.AvailabilityOccupied, s.Clock.Now())
		if err != nil {
			return err
		}
		if !claimed {
			return roomNotBookable(room)
		}
		room.Availability = models.AvailabilityOccupied
		room.UpdatedAt = s.Clock.Now()

		if err := repository.NewReservationRepository(tx).Save(ctx, res); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveReservation(string(res.Status))
	logrus.WithFields(logrus.Fields{
		"reservation_id": res.ID,
		"room_id":        res.RoomID,
		"guest_id":       res.GuestID,
	}).Info("reservation created")
	return res, nil
}

func (s *ReservationService) List(ctx context.Context, f repository.ReservationFilter) ([]models.Reservation, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperror.Validation("status", "must be one of PENDING, CONFIRMED, IN_PROGRESS, FINALIZED, CANCELLED")
	}
	return repository.NewReservationRepository(s.DB).FindAll(ctx, f)
}

func (s *ReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := repository.NewReservationRepository(s.DB).FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("find reservation", "reservation", id, err)
	}
	return res, nil
}

// Update changes room, guest or dates of a PENDING or CONFIRMED reservation.
// Moving to another room claims the new room before releasing the old one.
func (s *ReservationService) Update(ctx context.Context, id string, p ReservationPatch) (*models.Reservation, error) {
	var res *models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := repository.NewRoomRepository(tx)
		reservations := repository.NewReservationRepository(tx)

		var err error
		res, err = reservations.LockByID(ctx, id)
		if err != nil {
			return mapRepoError("find reservation", "reservation", id, err)
		}
		if !res.CanBeModified() {
			return apperror.Business("reservation can no longer be modified (current status %s)", res.Status)
		}

		var ch models.ReservationChanges
		var c apperror.Collector
		oldRoomID := res.RoomID
		room := res.Room

		if p.RoomID.IsNull() {
			ch.Room = patch.Null[*models.Room]()
		} else if roomID, ok := p.RoomID.Get(); ok && roomID != res.RoomID {
			room, err = rooms.FindByID(ctx, roomID)
			if err != nil {
				return mapRepoError("find room", "room", roomID, err)
			}
			ch.Room = patch.Of(room)
		}

		if p.GuestID.IsNull() {
			ch.Guest = patch.Null[*models.Guest]()
		} else if guestID, ok := p.GuestID.Get(); ok && guestID != res.GuestID {
			guest, err := repository.NewGuestRepository(tx).LockByID(ctx, guestID)
			if err != nil {
				return mapRepoError("find guest", "guest", guestID, err)
			}
			ch.Guest = patch.Of(guest)
		}

		checkIn, checkOut := res.CheckInDate(), res.CheckOutDate()
		if p.CheckIn.IsNull() {
			ch.CheckIn = patch.Null[time.Time]()
		} else if d, ok := p.CheckIn.Get(); ok {
			d = models.CivilDate(d)
			if !d.Equal(checkIn) && d.Before(s.today()) {
				c.Add("checkIn", "must not be in the past")
			}
			checkIn = d
			ch.CheckIn = patch.Of(d)
		}
		if p.CheckOut.IsNull() {
			ch.CheckOut = patch.Null[time.Time]()
		} else if d, ok := p.CheckOut.Get(); ok {
			checkOut = models.CivilDate(d)
			ch.CheckOut = patch.Of(checkOut)
		}
		if err := c.Err(); err != nil {
			return err
		}

		if nights := models.NightsBetween(checkIn, checkOut); room != nil && nights > 0 {
			ch.Total = patch.Of(room.ComputeTotal(nights))
		}
		if err := res.Update(ch, s.Clock); err != nil {
			return err
		}

		if res.RoomID != oldRoomID {
			claimed, err := rooms.CompareAndSetAvailability(ctx, res.RoomID,
				models.AvailabilityFree, models.AvailabilityOccupied, s.Clock.Now())
			if err != nil {
				return err
			}
			if !claimed {
				return roomNotBookable(res.Room)
			}
			res.Room.Availability = models.AvailabilityOccupied
			released, err := rooms.CompareAndSetAvailability(ctx, oldRoomID,
				models.AvailabilityOccupied, models.AvailabilityFree, s.Clock.Now())
			if err != nil {
				return err
			}
			if !released {
				logrus.WithFields(logrus.Fields{
					"reservation_id": id,
					"room_id":        oldRoomID,
				}).Warn("previous room was not occupied when the reservation moved")
			}
		}

		if err := reservations.Save(ctx, res); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("reservation_id", id).Info("reservation updated")
	return res, nil
}

func (s *ReservationService) Confirm(ctx context.Context, id string) (*models.Reservation, error) {
	return s.transition(ctx, id, (*models.Reservation).Confirm, "")
}

func (s *ReservationService) CheckIn(ctx context.Context, id string) (*models.Reservation, error) {
	return s.transition(ctx, id, (*models.Reservation).CheckInGuest, "")
}

// CheckOut finalizes the stay and hands the room to housekeeping.
func (s *ReservationService) CheckOut(ctx context.Context, id string) (*models.Reservation, error) {
	return s.transition(ctx, id, (*models.Reservation).CheckOutGuest, models.AvailabilityCleaning)
}

// Cancel ends the reservation and frees its room.
func (s *ReservationService) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	return s.transition(ctx, id, (*models.Reservation).Cancel, models.AvailabilityFree)
}

// transition applies op under a row lock and, when release is set, moves the
// room out of OCCUPIED in the same transaction.
func (s *ReservationService) transition(
	ctx context.Context,
	id string,
	op func(*models.Reservation, clockwork.Clock) error,
	release models.Availability,
) (*models.Reservation, error) {
	var res *models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservations := repository.NewReservationRepository(tx)
		var err error
		res, err = reservations.LockByID(ctx, id)
		if err != nil {
			return mapRepoError("find reservation", "reservation", id, err)
		}

		from := res.Status
		if err := op(res, s.Clock); err != nil {
			return err
		}

		if release != "" {
			freed, err := repository.NewRoomRepository(tx).CompareAndSetAvailability(ctx, res.RoomID,
				models.AvailabilityOccupied, release, s.Clock.Now())
			if err != nil {
				return err
			}
			if freed && res.Room != nil {
				res.Room.Availability = release
			}
			if !freed {
				logrus.WithFields(logrus.Fields{
					"reservation_id": id,
					"room_id":        res.RoomID,
					"from":           from,
				}).Warn("room was not occupied when the reservation ended")
			}
		}

		if err := reservations.Save(ctx, res); err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveReservation(string(res.Status))
	logrus.WithFields(logrus.Fields{"reservation_id": id, "status": res.Status}).Info("reservation status changed")
	return res, nil
}
