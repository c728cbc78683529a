package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking.  The
// set is closed: every status a booking row can hold appears here and
// all transition decisions go through CanTransitionTo rather than
// ad-hoc string comparisons at call sites.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"   // created, awaiting host confirmation
	BookingConfirmed BookingStatus = "CONFIRMED" // accepted by the listing owner
	BookingCancelled BookingStatus = "CANCELLED" // terminal; frees the date interval
	BookingCompleted BookingStatus = "COMPLETED" // terminal; set by post-checkout settlement, never by this API
)

// bookingTransitions is the full transition table.  A status that maps
// to an empty set is terminal.
var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingPending:   {BookingConfirmed: true, BookingCancelled: true},
	BookingConfirmed: {BookingCancelled: true},
	BookingCancelled: {},
	BookingCompleted: {},
}

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0 && s.Valid()
}

// CanTransitionTo reports whether the lifecycle permits moving from s
// to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return bookingTransitions[s][next]
}

// Blocking reports whether a booking in this status occupies its date
// interval for availability purposes.  Only PENDING and CONFIRMED
// bookings block; terminal statuses free the interval permanently.
func (s BookingStatus) Blocking() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking reserves a listing for a half-open date interval
// [CheckInDate, CheckOutDate) on behalf of a guest.  The check-out
// date itself is not occupied, so back-to-back stays on the same
// listing do not conflict.
//
// Fields:
//  ID              – primary key identifier.
//  Reference       – opaque UUID returned to clients.
//  ListingID       – listing being booked.
//  UserID          – guest who requested the booking.
//  CheckInDate     – first occupied night (inclusive).
//  CheckOutDate    – departure date (exclusive).
//  TotalPriceCents – nights multiplied by the nightly price at creation.
//  Status          – lifecycle state, see BookingStatus.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64        `json:"id"`                // bookings.id
	Reference       string        `json:"reference"`         // bookings.reference
	ListingID       uint64        `json:"listing_id"`        // bookings.listing_id
	UserID          uint64        `json:"user_id"`           // bookings.user_id
	CheckInDate     time.Time     `json:"check_in_date"`     // bookings.check_in_date (DATE)
	CheckOutDate    time.Time     `json:"check_out_date"`    // bookings.check_out_date (DATE)
	TotalPriceCents uint32        `json:"total_price_cents"` // bookings.total_price_cents
	Status          BookingStatus `json:"status"`            // bookings.status
	CreatedAt       time.Time     `json:"created_at"`        // bookings.created_at
	UpdatedAt       time.Time     `json:"updated_at"`        // bookings.updated_at
}

// Nights returns the number of occupied nights in the interval.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}
