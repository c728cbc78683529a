// Package booking holds the availability engine and the booking
// lifecycle service.  Both operate over store interfaces so the SQL
// layer stays injectable; no ambient state is consulted.
package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

// ErrInvalidDateRange is returned when a requested range does not
// satisfy check_in_date < check_out_date.  Handlers should translate
// this into an HTTP 400 response; the range is never silently
// corrected.
var ErrInvalidDateRange = errors.New("check_in_date must be before check_out_date")

// ErrListingNotFound is returned when a referenced listing does not
// exist or has been deactivated.  Inactive listings are invisible to
// every booking operation.
var ErrListingNotFound = errors.New("listing not found")

// ErrBookingNotFound is returned when a referenced booking does not
// exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrForbidden is returned when the acting user is neither the
// booking's guest nor the listing's owner for the attempted
// operation.
var ErrForbidden = errors.New("forbidden")

// ErrDateConflict is returned when the requested interval overlaps a
// pending or confirmed booking on the same listing.  The caller may
// retry with different dates.
var ErrDateConflict = errors.New("requested dates overlap an existing booking for this listing")

// ErrStatusChanged is returned by stores when a guarded status update
// finds the row no longer in the expected state, meaning a concurrent
// transition won.  The service reloads and reports the actual status.
var ErrStatusChanged = errors.New("booking status changed concurrently")

// InvalidTransitionError rejects a lifecycle action attempted from a
// terminal or incompatible state.  The message always names the
// booking's current status.
type InvalidTransitionError struct {
	Action  string              // attempted action, e.g. "confirm" or "cancel"
	Current model.BookingStatus // status the booking actually holds
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a booking that is %s", e.Action, strings.ToLower(string(e.Current)))
}
