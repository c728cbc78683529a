package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/booking"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

// fakeStore is an in-memory implementation of booking.ListingStore
// and booking.BookingStore. Its mutex serializes CreateIfAvailable
// the way the SQL store's row lock does, so the concurrency tests
// exercise the same check-then-insert discipline.
type fakeStore struct {
	mu       sync.Mutex
	listings map[uint64]*model.Listing
	bookings map[uint64]*model.Booking
	nextID   uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		listings: make(map[uint64]*model.Listing),
		bookings: make(map[uint64]*model.Booking),
	}
}

func (f *fakeStore) addListing(id, ownerID uint64, priceCents uint32, active bool) {
	f.listings[id] = &model.Listing{
		ID: id, OwnerID: ownerID, Title: "listing", Location: "somewhere",
		PricePerNightCents: priceCents, MaxGuests: 2, IsActive: active,
	}
}

func (f *fakeStore) GetActive(_ context.Context, id uint64) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok || !l.IsActive {
		return nil, booking.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (*model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok {
		return nil, booking.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeStore) BlockedListingIDs(_ context.Context, checkIn, checkOut time.Time) (map[uint64]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blocked := make(map[uint64]bool)
	for _, b := range f.bookings {
		if b.Status.Blocking() && booking.Overlaps(checkIn, checkOut, b.CheckInDate, b.CheckOutDate) {
			blocked[b.ListingID] = true
		}
	}
	return blocked, nil
}

func (f *fakeStore) HasBlockingOverlap(_ context.Context, listingID uint64, checkIn, checkOut time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasOverlapLocked(listingID, checkIn, checkOut), nil
}

func (f *fakeStore) hasOverlapLocked(listingID uint64, checkIn, checkOut time.Time) bool {
	for _, b := range f.bookings {
		if b.ListingID == listingID && b.Status.Blocking() &&
			booking.Overlaps(checkIn, checkOut, b.CheckInDate, b.CheckOutDate) {
			return true
		}
	}
	return false
}

func (f *fakeStore) CreateIfAvailable(_ context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[b.ListingID]
	if !ok || !l.IsActive {
		return booking.ErrListingNotFound
	}
	if f.hasOverlapLocked(b.ListingID, b.CheckInDate, b.CheckOutDate) {
		return booking.ErrDateConflict
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeStore) bookingByID(id uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uint64, from, to model.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	if b.Status != from {
		return booking.ErrStatusChanged
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// bookingStore adapts fakeStore's booking reads to the interface
// method name shared with the listing side.
type bookingStore struct{ *fakeStore }

func (s bookingStore) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	return s.bookingByID(id)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newService(f *fakeStore) *booking.Service {
	return booking.NewService(f, bookingStore{f})
}

const (
	hostID  = 1
	guestID = 2
)

func TestCreateBookingStartsPending(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 12000, true)
	svc := newService(f)

	b, err := svc.Create(context.Background(), 10, guestID, date(2024, 6, 1), date(2024, 6, 5))
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, uint32(4*12000), b.TotalPriceCents)
	assert.NotEmpty(t, b.Reference)
	assert.NotZero(t, b.ID)
}

func TestCreateBookingRejectsInvalidRange(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 12000, true)
	svc := newService(f)

	_, err := svc.Create(context.Background(), 10, guestID, date(2024, 6, 5), date(2024, 6, 5))
	assert.ErrorIs(t, err, booking.ErrInvalidDateRange)

	_, err = svc.Create(context.Background(), 10, guestID, date(2024, 6, 7), date(2024, 6, 5))
	assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
}

func TestCreateBookingRejectsInactiveListing(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 12000, false)
	svc := newService(f)

	_, err := svc.Create(context.Background(), 10, guestID, date(2024, 6, 1), date(2024, 6, 5))
	assert.ErrorIs(t, err, booking.ErrListingNotFound)
}

func TestHalfOpenBoundary(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 10000, true)
	svc := newService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, 10, guestID, date(2024, 6, 1), date(2024, 6, 5))
	require.NoError(t, err)

	// Back-to-back: check-in on the previous check-out day is fine.
	_, err = svc.Create(ctx, 10, guestID, date(2024, 6, 5), date(2024, 6, 10))
	require.NoError(t, err)

	// Straddling the first stay conflicts.
	_, err = svc.Create(ctx, 10, guestID, date(2024, 6, 3), date(2024, 6, 7))
	assert.ErrorIs(t, err, booking.ErrDateConflict)
}

func TestCancelFreesDates(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 10000, true)
	svc := newService(f)
	ctx := context.Background()

	a, err := svc.Create(ctx, 10, guestID, date(2024, 7, 1), date(2024, 7, 8))
	require.NoError(t, err)

	_, err = svc.Create(ctx, 10, 3, date(2024, 7, 1), date(2024, 7, 8))
	require.ErrorIs(t, err, booking.ErrDateConflict)

	_, err = svc.Cancel(ctx, a.ID, guestID)
	require.NoError(t, err)

	b, err := svc.Create(ctx, 10, 3, date(2024, 7, 1), date(2024, 7, 8))
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, b.Status)
}

func TestConfirmRequiresListingOwner(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 10000, true)
	svc := newService(f)
	ctx := context.Background()

	b, err := svc.Create(ctx, 10, guestID, date(2024, 8, 1), date(2024, 8, 3))
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, b.ID, guestID)
	assert.ErrorIs(t, err, booking.ErrForbidden)

	got, err := svc.Confirm(ctx, b.ID, hostID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, got.Status)
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 10000, true)
	svc := newService(f)
	ctx := context.Background()

	b, err := svc.Create(ctx, 10, guestID, date(2024, 9, 1), date(2024, 9, 4))
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, b.ID, guestID)
	require.NoError(t, err)

	// Confirming a cancelled booking names the current status.
	_, err = svc.Confirm(ctx, b.ID, hostID)
	var it *booking.InvalidTransitionError
	require.ErrorAs(t, err, &it)
	assert.Equal(t, model.BookingCancelled, it.Current)
	assert.Contains(t, err.Error(), "cancelled")

	// Cancelling twice fails the second time, also naming cancelled.
	_, err = svc.Cancel(ctx, b.ID, guestID)
	require.ErrorAs(t, err, &it)
	assert.Equal(t, model.BookingCancelled, it.Current)
	assert.Contains(t, err.Error(), "cancel")
}

func TestConfirmTwiceRejected(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 10000, true)
	svc := newService(f)
	ctx := context.Background()

	b, err := svc.Create(ctx, 10, guestID, date(2024, 9, 10), date(2024, 9, 12))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, b.ID, hostID)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, b.ID, hostID)
	var it *booking.InvalidTransitionError
	require.ErrorAs(t, err, &it)
	assert.Equal(t, model.BookingConfirmed, it.Current)
}

func TestSearchAndBookingAgree(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 10000, true)
	f.addListing(11, hostID, 15000, true)
	svc := newService(f)
	engine := booking.NewEngine(bookingStore{f})
	ctx := context.Background()

	_, err := svc.Create(ctx, 10, guestID, date(2024, 10, 1), date(2024, 10, 5))
	require.NoError(t, err)

	catalog := []model.Listing{*f.listings[10], *f.listings[11]}
	in, out := date(2024, 10, 2), date(2024, 10, 4)
	free, err := engine.FilterAvailable(ctx, catalog, &in, &out)
	require.NoError(t, err)

	// Whatever the engine excludes must also be rejected at booking
	// time, and whatever it includes must be bookable.
	freeIDs := make(map[uint64]bool)
	for _, l := range free {
		freeIDs[l.ID] = true
	}
	assert.False(t, freeIDs[10])
	assert.True(t, freeIDs[11])

	_, err = svc.Create(ctx, 10, 3, in, out)
	assert.ErrorIs(t, err, booking.ErrDateConflict)
	_, err = svc.Create(ctx, 11, 3, in, out)
	assert.NoError(t, err)
}

func TestConcurrentCreatesAdmitExactlyOne(t *testing.T) {
	f := newFakeStore()
	f.addListing(10, hostID, 10000, true)
	svc := newService(f)

	const workers = 16
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), 10, uint64(100+i), date(2024, 11, 1), date(2024, 11, 5))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, booking.ErrDateConflict)
		}
	}
	assert.Equal(t, 1, successes)
}
