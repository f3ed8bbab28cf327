package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-reservation/models"
)

type GormGuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GormGuestRepository {
	if db == nil {
		panic("database connection cannot be nil for GormGuestRepository")
	}
	return &GormGuestRepository{db: db}
}

func (r *GormGuestRepository) Save(ctx context.Context, guest *models.Guest) error {
	if err := upsert(r.db.WithContext(ctx), &models.Guest{}, guest.ID, guest); err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save guest (id: %s): %w", guest.ID, err)
	}
	return nil
}

func (r *GormGuestRepository) FindByID(ctx context.Context, id string) (*models.Guest, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *GormGuestRepository) LockByID(ctx context.Context, id string) (*models.Guest, error) {
	return r.first(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormGuestRepository) first(q *gorm.DB, id string) (*models.Guest, error) {
	var guest models.Guest
	err := q.Where("id = ?", id).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find guest by id %s: %w", id, err)
	}
	return &guest, nil
}

func (r *GormGuestRepository) FindByCPF(ctx context.Context, cpf models.CPF) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).Where("cpf = ?", cpf.String()).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find guest by cpf: %w", err)
	}
	return &guest, nil
}

func (r *GormGuestRepository) FindAll(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.db.WithContext(ctx).Order("first_name ASC, last_name ASC").Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find guests: %w", err)
	}
	return guests, nil
}

func (r *GormGuestRepository) ExistsByCPF(ctx context.Context, cpf models.CPF) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).Where("cpf = ?", cpf.String()).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: count guests by cpf: %w", err)
	}
	return count > 0, nil
}

func (r *GormGuestRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Guest{})
	if res.Error != nil {
		return fmt.Errorf("gorm: delete guest %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
