package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"hotel-reservation/apperror"
	"hotel-reservation/patch"
)

type Amenities struct {
	Minibar         bool `gorm:"column:has_minibar;not null;default:false"`
	Breakfast       bool `gorm:"column:has_breakfast;not null;default:false"`
	AirConditioning bool `gorm:"column:has_air_conditioning;not null;default:false"`
	TV              bool `gorm:"column:has_tv;not null;default:false"`
}

// Bed is owned by its room and addressed by slot; it keeps only the room id.
type Bed struct {
	RoomID string  `gorm:"type:char(36);primaryKey"`
	Slot   int     `gorm:"primaryKey;autoIncrement:false"`
	Type   BedType `gorm:"type:varchar(20);not null"`
}

type Room struct {
	ID           string          `gorm:"type:char(36);primaryKey"`
	Number       int             `gorm:"not null;uniqueIndex"`
	Capacity     int             `gorm:"not null"`
	Category     Category        `gorm:"type:varchar(20);not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Amenities    Amenities       `gorm:"embedded"`
	Availability Availability    `gorm:"type:varchar(20);not null;index"`
	Beds         []Bed           `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime:false"`
}

type RoomParams struct {
	Number    int
	Capacity  int
	Category  Category
	Price     decimal.Decimal
	Amenities Amenities
	BedTypes  []BedType
}

// NewRoom builds a FREE room with one bed per entry of p.BedTypes.
func NewRoom(p RoomParams, clk clockwork.Clock) (*Room, error) {
	now := clk.Now()
	r := &Room{
		ID:           uuid.NewString(),
		Number:       p.Number,
		Capacity:     p.Capacity,
		Category:     p.Category,
		Price:        p.Price,
		Amenities:    p.Amenities,
		Availability: AvailabilityFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.replaceBeds(p.BedTypes)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Room) replaceBeds(types []BedType) {
	beds := make([]Bed, 0, len(types))
	for i, t := range types {
		beds = append(beds, Bed{RoomID: r.ID, Slot: i, Type: t})
	}
	r.Beds = beds
}

func (r *Room) Validate() error {
	var c apperror.Collector
	if r.Number <= 0 {
		c.Add("number", "must be greater than zero")
	}
	if r.Capacity <= 0 {
		c.Add("capacity", "must be greater than zero")
	}
	if !r.Category.Valid() {
		c.Add("category", "must be one of BASIC, MODERN, LUXURY")
	}
	if !r.Price.IsPositive() {
		c.Add("price", "must be greater than zero")
	}
	if !r.Availability.Valid() {
		c.Add("availability", "unknown availability")
	}
	if len(r.Beds) == 0 {
		c.Add("beds", "room must have at least one bed")
	}
	for _, b := range r.Beds {
		if !b.Type.Valid() {
			c.Add("beds", "bed type must be one of SINGLE, KING, QUEEN")
			break
		}
	}
	return c.Err()
}

// ChangeAvailability accepts any transition between known states.
func (r *Room) ChangeAvailability(a Availability, clk clockwork.Clock) error {
	if !a.Valid() {
		return apperror.Validation("availability", "must be one of FREE, OCCUPIED, MAINTENANCE, CLEANING")
	}
	r.Availability = a
	r.UpdatedAt = clk.Now()
	return nil
}

func (r *Room) CanBeBooked() bool {
	return r.Availability == AvailabilityFree
}

func (r *Room) BedTypes() []BedType {
	out := make([]BedType, len(r.Beds))
	for i, b := range r.Beds {
		out[i] = b.Type
	}
	return out
}

// ComputeTotal is price × nights with no rounding.
func (r *Room) ComputeTotal(nights int) decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(nights)))
}

type RoomPatch struct {
	Number          patch.Field[int]             `json:"number"`
	Capacity        patch.Field[int]             `json:"capacity"`
	Category        patch.Field[Category]        `json:"category"`
	Price           patch.Field[decimal.Decimal] `json:"price"`
	Minibar         patch.Field[bool]            `json:"minibar"`
	Breakfast       patch.Field[bool]            `json:"breakfast"`
	AirConditioning patch.Field[bool]            `json:"airConditioning"`
	TV              patch.Field[bool]            `json:"tv"`
	BedTypes        patch.Field[[]BedType]       `json:"beds"`
}

// Update merges p into a copy of the room and only commits when the merged
// room is still valid. Every room field is required, so explicit nulls fail.
func (r *Room) Update(p RoomPatch, clk clockwork.Clock) error {
	var c apperror.Collector
	next := *r
	next.Beds = r.Beds

	apply(&c, "number", p.Number, &next.Number)
	apply(&c, "capacity", p.Capacity, &next.Capacity)
	apply(&c, "category", p.Category, &next.Category)
	apply(&c, "price", p.Price, &next.Price)
	apply(&c, "minibar", p.Minibar, &next.Amenities.Minibar)
	apply(&c, "breakfast", p.Breakfast, &next.Amenities.Breakfast)
	apply(&c, "airConditioning", p.AirConditioning, &next.Amenities.AirConditioning)
	apply(&c, "tv", p.TV, &next.Amenities.TV)

	if p.BedTypes.IsNull() {
		c.Add("beds", "cannot be cleared")
	} else if types, ok := p.BedTypes.Get(); ok {
		next.replaceBeds(types)
	}

	if err := c.Err(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = clk.Now()
	*r = next
	return nil
}

func apply[T any](c *apperror.Collector, field string, f patch.Field[T], dst *T) {
	if f.IsNull() {
		c.Add(field, "cannot be cleared")
		return
	}
	if v, ok := f.Get(); ok {
		*dst = v
	}
}
