package config

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-reservation/models"
)

type demoRoom struct {
	number   int
	capacity int
	category models.Category
	price    string
	amen     models.Amenities
	beds     []models.BedType
}

var demoRooms = []demoRoom{
	{101, 2, models.CategoryBasic, "150.00", models.Amenities{TV: true}, []models.BedType{models.BedSingle, models.BedSingle}},
	{102, 2, models.CategoryBasic, "150.00", models.Amenities{TV: true}, []models.BedType{models.BedQueen}},
	{201, 2, models.CategoryModern, "250.00", models.Amenities{TV: true, AirConditioning: true, Breakfast: true}, []models.BedType{models.BedQueen}},
	{202, 3, models.CategoryModern, "250.00", models.Amenities{TV: true, AirConditioning: true, Breakfast: true}, []models.BedType{models.BedQueen, models.BedSingle}},
	{301, 2, models.CategoryLuxury, "400.00", models.Amenities{TV: true, AirConditioning: true, Breakfast: true, Minibar: true}, []models.BedType{models.BedKing}},
	{302, 4, models.CategoryLuxury, "400.00", models.Amenities{TV: true, AirConditioning: true, Breakfast: true, Minibar: true}, []models.BedType{models.BedKing, models.BedSingle, models.BedSingle}},
}

// SeedDatabase inserts the demo rooms when the rooms table is empty.
func SeedDatabase(db *gorm.DB, clk clockwork.Clock) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		logrus.Info("rooms already seeded")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, d := range demoRooms {
			room, err := models.NewRoom(models.RoomParams{
				Number:    d.number,
				Capacity:  d.capacity,
				Category:  d.category,
				Price:     decimal.RequireFromString(d.price),
				Amenities: d.amen,
				BedTypes:  d.beds,
			}, clk)
			if err != nil {
				return fmt.Errorf("demo room %d: %w", d.number, err)
			}
			if err := tx.Create(room).Error; err != nil {
				return fmt.Errorf("seed room %d: %w", d.number, err)
			}
		}
		logrus.WithField("rooms", len(demoRooms)).Info("demo rooms seeded")
		return nil
	})
}
