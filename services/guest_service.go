package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-reservation/apperror"
	"hotel-reservation/models"
	"hotel-reservation/repository"
)

type GuestService struct {
	DB    *gorm.DB
	Clock clockwork.Clock
}

func NewGuestService(db *gorm.DB, clk clockwork.Clock) *GuestService {
	return &GuestService{DB: db, Clock: clk}
}

type GuestInput struct {
	FirstName string
	LastName  string
	CPF       string
	Email     string
}

var errDuplicateCPF = apperror.Business("a guest with this CPF already exists")

func (s *GuestService) Create(ctx context.Context, in GuestInput) (*models.Guest, error) {
	guest, err := models.NewGuest(in.FirstName, in.LastName, in.CPF, in.Email, s.Clock)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guests := repository.NewGuestRepository(tx)
		taken, err := guests.ExistsByCPF(ctx, guest.CPF)
		if err != nil {
			return fmt.Errorf("check cpf: %w", err)
		}
		if taken {
			return errDuplicateCPF
		}
		if err := guests.Save(ctx, guest); err != nil {
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return errDuplicateCPF
			}
			return fmt.Errorf("save guest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("guest_id", guest.ID).Info("guest created")
	return guest, nil
}

func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	return repository.NewGuestRepository(s.DB).FindAll(ctx)
}

func (s *GuestService) Get(ctx context.Context, id string) (*models.Guest, error) {
	guest, err := repository.NewGuestRepository(s.DB).FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError("find guest", "guest", id, err)
	}
	return guest, nil
}

// GetByCPF accepts the document with or without punctuation.
func (s *GuestService) GetByCPF(ctx context.Context, raw string) (*models.Guest, error) {
	cpf, err := models.NewCPF(raw)
	if err != nil {
		return nil, err
	}
	guest, err := repository.NewGuestRepository(s.DB).FindByCPF(ctx, cpf)
	if err != nil {
		return nil, mapRepoError("find guest", "guest", cpf.Formatted(), err)
	}
	return guest, nil
}

func (s *GuestService) Update(ctx context.Context, id string, p models.GuestPatch) (*models.Guest, error) {
	var guest *models.Guest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guests := repository.NewGuestRepository(tx)
		var err error
		guest, err = guests.LockByID(ctx, id)
		if err != nil {
			return mapRepoError("find guest", "guest", id, err)
		}
		if err := guest.Update(p, s.Clock); err != nil {
			return err
		}
		if err := guests.Save(ctx, guest); err != nil {
			return fmt.Errorf("save guest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("guest_id", id).Info("guest updated")
	return guest, nil
}

// Delete locks the guest row first so a booking for the same guest either
// commits before the reference check or waits for the delete.
func (s *GuestService) Delete(ctx context.Context, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guests := repository.NewGuestRepository(tx)
		if _, err := guests.LockByID(ctx, id); err != nil {
			return mapRepoError("find guest", "guest", id, err)
		}

		used, err := repository.NewReservationRepository(tx).ExistsByGuestID(ctx, id)
		if err != nil {
			return fmt.Errorf("check reservations: %w", err)
		}
		if used {
			return apperror.Business("guest has reservations and cannot be deleted")
		}
		return mapRepoError("delete guest", "guest", id, guests.DeleteByID(ctx, id))
	})
	if err != nil {
		return err
	}

	logrus.WithField("guest_id", id).Info("guest deleted")
	return nil
}
