package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-reservation/apperror"
	"hotel-reservation/metrics"
	"hotel-reservation/models"
	"hotel-reservation/repository"
)

type RoomService struct {
	DB    *gorm.DB
	Clock clockwork.Clock
}

func NewRoomService(db *gorm.DB, clk clockwork.Clock) *RoomService {
	return &RoomService{DB: db, Clock: clk}
}

func duplicateRoomNumber(number int) error {
	return apperror.Business("room number %d already exists", number)
}

func (s *RoomService) Create(ctx context.Context, p models.RoomParams) (*models.Room, error) {
	room, err := models.NewRoom(p, s.Clock)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := repository.NewRoomRepository(tx)
		taken, err := rooms.ExistsByNumber(ctx, room.Number, "")
		if err != nil {
			return fmt.Errorf("check room number: %w", err)
		}
		if taken {
			return duplicateRoomNumber(room.Number)
		}
		if err := rooms.Save(ctx, room); err != nil {
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return duplicateRoomNumber(room.Number)
			}
			return fmt.Errorf("save room: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"room_id": room.ID, "number": room.Number}).Info("room created")
	return room, nil
}

// List returns every room, or only those in the given availability when it is set.
func (s *RoomService) List(ctx context.Context, availability models.Availability) ([]models.Room, error) {
	rooms := repository.NewRoomRepository(s.DB)
	if availability == "" {
		return rooms.FindAll(ctx)
	}
	if !availability.Valid() {
		return nil, apperror.Validation("availability", "must be one of FREE, OCCUPIED, MAINTENANCE, CLEANING")
	}
	return rooms.FindAllByAvailability(ctx, availability)
}

func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := repository.NewRoomRepository(s.DB).FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("find room", "room", id, err)
	}
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id string, p models.RoomPatch) (*models.Room, error) {
	var room *models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := repository.NewRoomRepository(tx)
		var err error
		room, err = rooms.LockByID(ctx, id)
		if err != nil {
			return mapRepoError("find room", "room", id, err)
		}
		if err := room.Update(p, s.Clock); err != nil {
			return err
		}

		if p.Number.IsSet() {
			taken, err := rooms.ExistsByNumber(ctx, room.Number, room.ID)
			if err != nil {
				return fmt.Errorf("check room number: %w", err)
			}
			if taken {
				return duplicateRoomNumber(room.Number)
			}
		}
		if err := rooms.Save(ctx, room); err != nil {
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return duplicateRoomNumber(room.Number)
			}
			return fmt.Errorf("save room: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("room_id", room.ID).Info("room updated")
	return room, nil
}

// ChangeAvailability is the manual housekeeping switch. OCCUPIED belongs to
// the reservation lifecycle and cannot be entered or left by hand while a
// reservation holds the room.
func (s *RoomService) ChangeAvailability(ctx context.Context, id string, a models.Availability) (*models.Room, error) {
	if !a.Valid() {
		return nil, apperror.Validation("availability", "must be one of FREE, OCCUPIED, MAINTENANCE, CLEANING")
	}
	if a == models.AvailabilityOccupied {
		return nil, apperror.Business("rooms become occupied only through a reservation")
	}

	var room *models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := repository.NewRoomRepository(tx)
		var err error
		room, err = rooms.LockByID(ctx, id)
		if err != nil {
			return mapRepoError("find room", "room", id, err)
		}

		if room.Availability == models.AvailabilityOccupied {
			held, err := repository.NewReservationRepository(tx).ExistsActiveByRoomID(ctx, id)
			if err != nil {
				return fmt.Errorf("check active reservation: %w", err)
			}
			if held {
				return apperror.Business("room %d is held by an active reservation", room.Number)
			}
		}

		if err := room.ChangeAvailability(a, s.Clock); err != nil {
			return err
		}
		if err := rooms.Save(ctx, room); err != nil {
			return fmt.Errorf("save room: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveRoomAvailability(string(a))
	logrus.WithFields(logrus.Fields{"room_id": id, "availability": a}).Info("room availability changed")
	return room, nil
}

// Delete removes the room and its beds. Rooms referenced by any reservation
// are kept so reservation history stays intact. The room row is locked before
// the reference check so a concurrent booking cannot slip in between.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rooms := repository.NewRoomRepository(tx)
		room, err := rooms.LockByID(ctx, id)
		if err != nil {
			return mapRepoError("find room", "room", id, err)
		}

		used, err := repository.NewReservationRepository(tx).ExistsByRoomID(ctx, id)
		if err != nil {
			return fmt.Errorf("check reservations: %w", err)
		}
		if used {
			return apperror.Business("room %d has reservations and cannot be deleted", room.Number)
		}
		return mapRepoError("delete room", "room", id, rooms.DeleteByID(ctx, id))
	})
	if err != nil {
		return err
	}

	logrus.WithField("room_id", id).Info("room deleted")
	return nil
}
