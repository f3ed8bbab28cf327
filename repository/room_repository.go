package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotel-reservation/models"
)

type GormRoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *GormRoomRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRoomRepository")
	}
	return &GormRoomRepository{db: db}
}

func bedsBySlot(db *gorm.DB) *gorm.DB {
	return db.Order("slot ASC")
}

func (r *GormRoomRepository) Save(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsert(tx, &models.Room{}, room.ID, room); err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", room.ID).Delete(&models.Bed{}).Error; err != nil {
			return err
		}
		for i := range room.Beds {
			room.Beds[i].RoomID = room.ID
		}
		if len(room.Beds) == 0 {
			return nil
		}
		return tx.Create(&room.Beds).Error
	})
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save room (id: %s, number: %d): %w", room.ID, room.Number, err)
	}
	return nil
}

func (r *GormRoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *GormRoomRepository) LockByID(ctx context.Context, id string) (*models.Room, error) {
	return r.first(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormRoomRepository) first(q *gorm.DB, id string) (*models.Room, error) {
	var room models.Room
	err := q.Preload("Beds", bedsBySlot).Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find room by id %s: %w", id, err)
	}
	return &room, nil
}

func (r *GormRoomRepository) FindAll(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).Preload("Beds", bedsBySlot).Order("number ASC").Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find rooms: %w", err)
	}
	return rooms, nil
}

func (r *GormRoomRepository) FindAllByAvailability(ctx context.Context, a models.Availability) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Preload("Beds", bedsBySlot).
		Where("availability = ?", a).
		Order("number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find rooms by availability %s: %w", a, err)
	}
	return rooms, nil
}

func (r *GormRoomRepository) ExistsByNumber(ctx context.Context, number int, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Room{}).Where("number = ?", number)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("gorm: count rooms by number %d: %w", number, err)
	}
	return count > 0, nil
}

func (r *GormRoomRepository) CompareAndSetAvailability(ctx context.Context, id string, from, to models.Availability, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ? AND availability = ?", id, from).
		Updates(map[string]any{"availability": to, "updated_at": at})
	if res.Error != nil {
		return false, fmt.Errorf("gorm: set room %s availability %s -> %s: %w", id, from, to, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *GormRoomRepository) DeleteByID(ctx context.Context, id string) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.Bed{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Room{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("gorm: delete room %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
