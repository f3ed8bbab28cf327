package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reservation/apperror"
	"hotel-reservation/models"
	"hotel-reservation/patch"
)

func TestRoomService_CreateRejectsDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	f.room(t, 101)

	_, err := f.rooms.Create(context.Background(), models.RoomParams{
		Number:   101,
		Capacity: 1,
		Category: models.CategoryLuxury,
		Price:    decimal.RequireFromString("400.00"),
		BedTypes: []models.BedType{models.BedKing},
	})
	assert.True(t, apperror.IsBusiness(err))
}

func TestRoomService_CreateValidates(t *testing.T) {
	f := newFixture(t)
	_, err := f.rooms.Create(context.Background(), models.RoomParams{Number: 0})
	var v *apperror.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "number")
	assert.Contains(t, v.Fields, "beds")
}

func TestRoomService_GetMissing(t *testing.T) {
	f := newFixture(t)
	_, err := f.rooms.Get(context.Background(), "nope")
	assert.True(t, apperror.IsNotFound(err))
}

func TestRoomService_UpdateNumberConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.room(t, 101)
	room := f.room(t, 102)

	_, err := f.rooms.Update(ctx, room.ID, models.RoomPatch{Number: patch.Of(101)})
	assert.True(t, apperror.IsBusiness(err))

	updated, err := f.rooms.Update(ctx, room.ID, models.RoomPatch{
		Number:   patch.Of(110),
		BedTypes: patch.Of([]models.BedType{models.BedKing}),
	})
	require.NoError(t, err)
	assert.Equal(t, 110, updated.Number)

	got, err := f.rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 110, got.Number)
	assert.Equal(t, []models.BedType{models.BedKing}, got.BedTypes())
}

func TestRoomService_ListByAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.room(t, 101)
	room := f.room(t, 102)
	_, err := f.rooms.ChangeAvailability(ctx, room.ID, models.AvailabilityMaintenance)
	require.NoError(t, err)

	free, err := f.rooms.List(ctx, models.AvailabilityFree)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, 101, free[0].Number)

	all, err := f.rooms.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.rooms.List(ctx, "BROKEN")
	assert.True(t, apperror.IsValidation(err))
}

func TestRoomService_ChangeAvailabilityGuardsOccupied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	room := f.room(t, 101)
	guest := f.guest(t, "52998224725")

	_, err := f.rooms.ChangeAvailability(ctx, room.ID, models.AvailabilityOccupied)
	assert.True(t, apperror.IsBusiness(err))

	f.book(t, room, guest, 2, 4)
	_, err = f.rooms.ChangeAvailability(ctx, room.ID, models.AvailabilityFree)
	assert.True(t, apperror.IsBusiness(err))

	_, err = f.rooms.ChangeAvailability(ctx, room.ID, "BROKEN")
	assert.True(t, apperror.IsValidation(err))

	_, err = f.rooms.ChangeAvailability(ctx, "missing", models.AvailabilityFree)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRoomService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spare := f.room(t, 101)
	booked := f.room(t, 102)
	res := f.book(t, booked, f.guest(t, "52998224725"), 2, 4)

	require.NoError(t, f.rooms.Delete(ctx, spare.ID))
	_, err := f.rooms.Get(ctx, spare.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(f.rooms.Delete(ctx, spare.ID)))

	_, err = f.reservations.Cancel(ctx, res.ID)
	require.NoError(t, err)
	assert.True(t, apperror.IsBusiness(f.rooms.Delete(ctx, booked.ID)))
}
