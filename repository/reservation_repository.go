package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-reservation/models"
)

type GormReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *GormReservationRepository {
	if db == nil {
		panic("database connection cannot be nil for GormReservationRepository")
	}
	return &GormReservationRepository{db: db}
}

// Save writes the reservation row only; room and guest are persisted by their
// own repositories.
func (r *GormReservationRepository) Save(ctx context.Context, res *models.Reservation) error {
	if err := upsert(r.db.WithContext(ctx), &models.Reservation{}, res.ID, res); err != nil {
		return fmt.Errorf("gorm: save reservation (id: %s): %w", res.ID, err)
	}
	return nil
}

func (r *GormReservationRepository) withRefs(q *gorm.DB) *gorm.DB {
	return q.Preload("Room").Preload("Room.Beds", bedsBySlot).Preload("Guest")
}

func (r *GormReservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *GormReservationRepository) LockByID(ctx context.Context, id string) (*models.Reservation, error) {
	return r.first(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormReservationRepository) first(q *gorm.DB, id string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.withRefs(q).Where("id = ?", id).First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find reservation by id %s: %w", id, err)
	}
	return &res, nil
}

func (r *GormReservationRepository) FindAll(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	q := r.withRefs(r.db.WithContext(ctx))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RoomID != "" {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.GuestID != "" {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.ActiveOnly {
		q = q.Where("status IN ?", models.ActiveStatuses)
	}

	var out []models.Reservation
	if err := q.Order("check_in ASC, created_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("gorm: find reservations: %w", err)
	}
	return out, nil
}

func (r *GormReservationRepository) ExistsActiveByRoomID(ctx context.Context, roomID string) (bool, error) {
	return r.exists(ctx, "room_id = ? AND status IN ?", roomID, models.ActiveStatuses)
}

func (r *GormReservationRepository) ExistsByRoomID(ctx context.Context, roomID string) (bool, error) {
	return r.exists(ctx, "room_id = ?", roomID)
}

func (r *GormReservationRepository) ExistsByGuestID(ctx context.Context, guestID string) (bool, error) {
	return r.exists(ctx, "guest_id = ?", guestID)
}

func (r *GormReservationRepository) exists(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).Where(where, args...).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: count reservations where %s: %w", where, err)
	}
	return count > 0, nil
}
