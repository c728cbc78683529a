// Package queue defines message payloads exchanged over the message
// broker, the publisher used by handlers and the background consumer.
package queue

// BookingConfirmedEvent is published when a host confirms a booking.
// It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	Reference       string `json:"reference"`
	ListingID       uint64 `json:"listing_id"`
	ListingTitle    string `json:"listing_title"`
	ListingLocation string `json:"listing_location"`
	UserID          uint64 `json:"user_id"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	TotalPriceCents uint32 `json:"total_price_cents"`
	ConfirmedAt     string `json:"confirmed_at"`
}
