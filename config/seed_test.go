package config

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reservation/models"
)

func TestSeedDatabase(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := ConnectDatabase(DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)

	clk := clockwork.NewFakeClock()
	require.NoError(t, SeedDatabase(db, clk))
	require.NoError(t, SeedDatabase(db, clk))

	var rooms []models.Room
	require.NoError(t, db.Preload("Beds").Order("number").Find(&rooms).Error)
	require.Len(t, rooms, len(demoRooms))
	assert.Equal(t, 101, rooms[0].Number)
	assert.Equal(t, models.CategoryLuxury, rooms[5].Category)
	assert.Equal(t, "400", rooms[5].Price.String())
	assert.Len(t, rooms[5].Beds, 3)
}
