// Package repository is the persistence gateway for rooms, guests and
// reservations. Every implementation is bound to a *gorm.DB, which may be the
// root connection or an open transaction.
package repository

import (
	"context"
	"time"

	"hotel-reservation/models"
)

type RoomRepository interface {
	// Save inserts or updates the room and replaces its beds.
	Save(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id string) (*models.Room, error)
	// LockByID loads the room holding a row lock until the transaction ends.
	LockByID(ctx context.Context, id string) (*models.Room, error)
	FindAll(ctx context.Context) ([]models.Room, error)
	FindAllByAvailability(ctx context.Context, a models.Availability) ([]models.Room, error)
	// ExistsByNumber ignores the room identified by excludeID when it is not empty.
	ExistsByNumber(ctx context.Context, number int, excludeID string) (bool, error)
	// CompareAndSetAvailability moves the room from one availability to another
	// only if it is currently in from. It reports whether the row changed.
	CompareAndSetAvailability(ctx context.Context, id string, from, to models.Availability, at time.Time) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

type GuestRepository interface {
	Save(ctx context.Context, guest *models.Guest) error
	FindByID(ctx context.Context, id string) (*models.Guest, error)
	// LockByID loads the guest holding a row lock until the transaction ends.
	LockByID(ctx context.Context, id string) (*models.Guest, error)
	FindByCPF(ctx context.Context, cpf models.CPF) (*models.Guest, error)
	FindAll(ctx context.Context) ([]models.Guest, error)
	ExistsByCPF(ctx context.Context, cpf models.CPF) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

// ReservationFilter narrows FindAll. Zero values mean "any".
type ReservationFilter struct {
	Status     models.ReservationStatus
	RoomID     string
	GuestID    string
	ActiveOnly bool
}

type ReservationRepository interface {
	Save(ctx context.Context, res *models.Reservation) error
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	// LockByID loads the reservation holding a row lock until the transaction ends.
	LockByID(ctx context.Context, id string) (*models.Reservation, error)
	FindAll(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error)
	ExistsActiveByRoomID(ctx context.Context, roomID string) (bool, error)
	ExistsByRoomID(ctx context.Context, roomID string) (bool, error)
	ExistsByGuestID(ctx context.Context, guestID string) (bool, error)
}

var (
	_ RoomRepository        = (*GormRoomRepository)(nil)
	_ GuestRepository       = (*GormGuestRepository)(nil)
	_ ReservationRepository = (*GormReservationRepository)(nil)
)
