package booking

import (
	"context"
	"time"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

// Overlaps reports whether the half-open intervals [aIn, aOut) and
// [bIn, bOut) intersect.  A check-out on day D never conflicts with a
// check-in on day D, so back-to-back stays are allowed.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// Engine answers "which listings are free for these dates".  Its
// results are point-in-time views, not reservations: search-time
// filtering is advisory and every booking creation re-validates
// against the current persisted set.
type Engine struct {
	bookings BookingStore
}

// NewEngine returns an Engine reading from the given booking store.
func NewEngine(bookings BookingStore) *Engine {
	if bookings == nil {
		panic("nil booking store passed to NewEngine")
	}
	return &Engine{bookings: bookings}
}

// FilterAvailable returns the subset of listings with no blocking
// booking overlapping [checkIn, checkOut), preserving the caller's
// ordering.  When either date is nil no filtering is applied and the
// input is returned unchanged.  Malformed dates are the caller's
// responsibility; this engine only treats absence as "no filter".
func (e *Engine) FilterAvailable(ctx context.Context, listings []model.Listing, checkIn, checkOut *time.Time) ([]model.Listing, error) {
	if checkIn == nil || checkOut == nil {
		return listings, nil
	}
	blocked, err := e.bookings.BlockedListingIDs(ctx, *checkIn, *checkOut)
	if err != nil {
		return nil, err
	}
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if !blocked[l.ID] {
			out = append(out, l)
		}
	}
	return out, nil
}

// IsAvailable reports whether a single listing is free for
// [checkIn, checkOut).  It is the same predicate FilterAvailable
// applies, specialised to one listing; booking creation uses it
// transactionally via BookingStore.CreateIfAvailable.
func (e *Engine) IsAvailable(ctx context.Context, listingID uint64, checkIn, checkOut time.Time) (bool, error) {
	overlap, err := e.bookings.HasBlockingOverlap(ctx, listingID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}
