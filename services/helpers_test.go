package services

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-reservation/models"
	"hotel-reservation/testutil"
)

type fixture struct {
	db           *gorm.DB
	clock        *clockwork.FakeClock
	rooms        *RoomService
	guests       *GuestService
	reservations *ReservationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	clk := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return &fixture{
		db:           db,
		clock:        clk,
		rooms:        NewRoomService(db, clk),
		guests:       NewGuestService(db, clk),
		reservations: NewReservationService(db, clk, time.UTC),
	}
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) room(t *testing.T, number int) *models.Room {
	t.Helper()
	room, err := f.rooms.Create(context.Background(), models.RoomParams{
		Number:   number,
		Capacity: 2,
		Category: models.CategoryBasic,
		Price:    decimal.RequireFromString("150.00"),
		BedTypes: []models.BedType{models.BedSingle, models.BedSingle},
	})
	require.NoError(t, err)
	return room
}

func (f *fixture) guest(t *testing.T, cpf string) *models.Guest {
	t.Helper()
	guest, err := f.guests.Create(context.Background(), GuestInput{
		FirstName: "Maria",
		LastName:  "Silva",
		CPF:       cpf,
		Email:     "maria@example.com",
	})
	require.NoError(t, err)
	return guest
}

func (f *fixture) book(t *testing.T, room *models.Room, guest *models.Guest, in, out int) *models.Reservation {
	t.Helper()
	res, err := f.reservations.Create(context.Background(), ReservationInput{
		RoomID:   room.ID,
		GuestID:  guest.ID,
		CheckIn:  day(in),
		CheckOut: day(out),
	})
	require.NoError(t, err)
	return res
}
