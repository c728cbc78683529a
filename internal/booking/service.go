package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

// Service owns the booking lifecycle: creation with availability
// validation, host confirmation and cancellation.  Every mutating
// method takes the acting user explicitly; nothing is read from
// ambient request state.
type Service struct {
	listings ListingStore
	bookings BookingStore
}

// NewService constructs a Service.  Both stores must be non-nil.
func NewService(listings ListingStore, bookings BookingStore) *Service {
	if listings == nil || bookings == nil {
		panic("nil store passed to NewService")
	}
	return &Service{listings: listings, bookings: bookings}
}

// Create books the listing for [checkIn, checkOut) on behalf of
// userID.  The overlap check runs inside the store's transaction
// against the current persisted booking set, which closes the race
// between an earlier search and this submission.  The new booking
// starts in PENDING.
func (s *Service) Create(ctx context.Context, listingID, userID uint64, checkIn, checkOut time.Time) (*model.Booking, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}
	lst, err := s.listings.GetActive(ctx, listingID)
	if err != nil {
		return nil, err
	}
	b := &model.Booking{
		Reference:    uuid.NewString(),
		ListingID:    lst.ID,
		UserID:       userID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       model.BookingPending,
	}
	b.TotalPriceCents = uint32(b.Nights()) * lst.PricePerNightCents
	if err := s.bookings.CreateIfAvailable(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Confirm moves a PENDING booking to CONFIRMED.  Only the listing
// owner may confirm.  Any other current status yields an
// InvalidTransitionError naming that status.
func (s *Service) Confirm(ctx context.Context, id, actorID uint64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lst, err := s.listings.GetByID(ctx, b.ListingID)
	if err != nil {
		return nil, err
	}
	if lst.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return s.transition(ctx, b, "confirm", model.BookingConfirmed)
}

// Cancel moves a PENDING or CONFIRMED booking to CANCELLED, a
// terminal state that immediately frees the interval for future
// availability checks.  The booking's guest and the listing owner may
// cancel.  A booking already CANCELLED or COMPLETED yields an
// InvalidTransitionError naming that status.
func (s *Service) Cancel(ctx context.Context, id, actorID uint64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != actorID {
		lst, err := s.listings.GetByID(ctx, b.ListingID)
		if err != nil {
			return nil, err
		}
		if lst.OwnerID != actorID {
			return nil, ErrForbidden
		}
	}
	return s.transition(ctx, b, "cancel", model.BookingCancelled)
}

// transition applies the status table and the guarded store update.
// When the guard loses to a concurrent transition, the booking is
// reloaded so the error names the status that actually won.
func (s *Service) transition(ctx context.Context, b *model.Booking, action string, to model.BookingStatus) (*model.Booking, error) {
	if !b.Status.CanTransitionTo(to) {
		return nil, &InvalidTransitionError{Action: action, Current: b.Status}
	}
	if err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, to); err != nil {
		if errors.Is(err, ErrStatusChanged) {
			cur, reloadErr := s.bookings.GetByID(ctx, b.ID)
			if reloadErr != nil {
				return nil, reloadErr
			}
			return nil, &InvalidTransitionError{Action: action, Current: cur.Status}
		}
		return nil, err
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return b, nil
}
