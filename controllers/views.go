package controllers

import (
	"time"

	"hotel-reservation/models"
)

type RoomView struct {
	ID              string              `json:"id"`
	Number          int                 `json:"number"`
	Capacity        int                 `json:"capacity"`
	Category        models.Category     `json:"category"`
	Price           string              `json:"price"`
	Minibar         bool                `json:"minibar"`
	Breakfast       bool                `json:"breakfast"`
	AirConditioning bool                `json:"airConditioning"`
	TV              bool                `json:"tv"`
	Availability    models.Availability `json:"availability"`
	Beds            []models.BedType    `json:"beds"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func toRoomView(r *models.Room) RoomView {
	return RoomView{
		ID:              r.ID,
		Number:          r.Number,
		Capacity:        r.Capacity,
		Category:        r.Category,
		Price:           r.Price.StringFixed(2),
		Minibar:         r.Amenities.Minibar,
		Breakfast:       r.Amenities.Breakfast,
		AirConditioning: r.Amenities.AirConditioning,
		TV:              r.Amenities.TV,
		Availability:    r.Availability,
		Beds:            r.BedTypes(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type GuestView struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toGuestView(g *models.Guest) GuestView {
	return GuestView{
		ID:        g.ID,
		FirstName: g.FirstName,
		LastName:  g.LastName,
		FullName:  g.FullName(),
		CPF:       g.CPF.Formatted(),
		Email:     g.Email.String(),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

type ReservationView struct {
	ID         string                   `json:"id"`
	RoomID     string                   `json:"roomId"`
	RoomNumber int                      `json:"roomNumber,omitempty"`
	GuestID    string                   `json:"guestId"`
	GuestName  string                   `json:"guestName,omitempty"`
	CheckIn    string                   `json:"checkIn"`
	CheckOut   string                   `json:"checkOut"`
	Nights     int                      `json:"nights"`
	Total      string                   `json:"total"`
	Status     models.ReservationStatus `json:"status"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
}

func toReservationView(r *models.Reservation) ReservationView {
	v := ReservationView{
		ID:        r.ID,
		RoomID:    r.RoomID,
		GuestID:   r.GuestID,
		CheckIn:   r.CheckInDate().Format(dateLayout),
		CheckOut:  r.CheckOutDate().Format(dateLayout),
		Nights:    r.Nights(),
		Total:     r.Total.StringFixed(2),
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Room != nil {
		v.RoomNumber = r.Room.Number
	}
	if r.Guest != nil {
		v.GuestName = r.Guest.FullName()
	}
	return v
}

func mapViews[M any, V any](items []M, fn func(*M) V) []V {
	out := make([]V, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}
