package models

// Category is the commercial class of a room.
type Category string

const (
	CategoryBasic  Category = "BASIC"
	CategoryModern Category = "MODERN"
	CategoryLuxury Category = "LUXURY"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBasic, CategoryModern, CategoryLuxury:
		return true
	}
	return false
}

// Availability is the operational state of a room. OCCUPIED is owned by the
// reservation lifecycle; the other states are set by housekeeping.
type Availability string

const (
	AvailabilityFree        Availability = "FREE"
	AvailabilityOccupied    Availability = "OCCUPIED"
	AvailabilityMaintenance Availability = "MAINTENANCE"
	AvailabilityCleaning    Availability = "CLEANING"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityFree, AvailabilityOccupied, AvailabilityMaintenance, AvailabilityCleaning:
		return true
	}
	return false
}

type BedType string

const (
	BedSingle BedType = "SINGLE"
	BedKing   BedType = "KING"
	BedQueen  BedType = "QUEEN"
)

func (b BedType) Valid() bool {
	switch b {
	case BedSingle, BedKing, BedQueen:
		return true
	}
	return false
}

type ReservationStatus string

const (
	StatusPending    ReservationStatus = "PENDING"
	StatusConfirmed  ReservationStatus = "CONFIRMED"
	StatusInProgress ReservationStatus = "IN_PROGRESS"
	StatusFinalized  ReservationStatus = "FINALIZED"
	StatusCancelled  ReservationStatus = "CANCELLED"
)

// ActiveStatuses are the non-terminal statuses; a room holds at most one
// reservation in any of them.
var ActiveStatuses = []ReservationStatus{StatusPending, StatusConfirmed, StatusInProgress}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusFinalized, StatusCancelled:
		return true
	}
	return false
}

func (s ReservationStatus) IsTerminal() bool {
	return s == StatusFinalized || s == StatusCancelled
}

func (s ReservationStatus) IsActive() bool {
	return s.Valid() && !s.IsTerminal()
}
