package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/booking"
	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		name                 string
		aIn, aOut, bIn, bOut time.Time
		want                 bool
	}{
		{"identical", date(2024, 6, 1), date(2024, 6, 5), date(2024, 6, 1), date(2024, 6, 5), true},
		{"straddle", date(2024, 6, 1), date(2024, 6, 5), date(2024, 6, 3), date(2024, 6, 7), true},
		{"contained", date(2024, 6, 1), date(2024, 6, 10), date(2024, 6, 3), date(2024, 6, 5), true},
		{"back_to_back_after", date(2024, 6, 1), date(2024, 6, 5), date(2024, 6, 5), date(2024, 6, 9), false},
		{"back_to_back_before", date(2024, 6, 5), date(2024, 6, 9), date(2024, 6, 1), date(2024, 6, 5), false},
		{"disjoint", date(2024, 6, 1), date(2024, 6, 3), date(2024, 6, 10), date(2024, 6, 12), false},
		{"one_night_inside", date(2024, 6, 1), date(2024, 6, 5), date(2024, 6, 2), date(2024, 6, 3), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.Overlaps(tc.aIn, tc.aOut, tc.bIn, tc.bOut))
			// The predicate is symmetric in its two intervals.
			assert.Equal(t, tc.want, booking.Overlaps(tc.bIn, tc.bOut, tc.aIn, tc.aOut))
		})
	}
}

func TestFilterAvailableWithoutDatesIsPassthrough(t *testing.T) {
	f := newFakeStore()
	engine := booking.NewEngine(bookingStore{f})
	catalog := []model.Listing{{ID: 3}, {ID: 1}, {ID: 2}}

	in := date(2024, 6, 1)
	for _, pair := range []struct{ in, out *time.Time }{
		{nil, nil},
		{&in, nil},
		{nil, &in},
	} {
		got, err := engine.FilterAvailable(context.Background(), catalog, pair.in, pair.out)
		require.NoError(t, err)
		assert.Equal(t, catalog, got)
	}
}

func TestFilterAvailableExcludesBlockedAndKeepsOrder(t *testing.T) {
	f := newFakeStore()
	f.addListing(1, hostID, 10000, true)
	f.addListing(2, hostID, 10000, true)
	f.addListing(3, hostID, 10000, true)
	svc := newService(f)
	engine := booking.NewEngine(bookingStore{f})
	ctx := context.Background()

	_, err := svc.Create(ctx, 2, guestID, date(2024, 6, 1), date(2024, 6, 5))
	require.NoError(t, err)
	// Cancelled bookings do not block.
	c, err := svc.Create(ctx, 3, guestID, date(2024, 6, 1), date(2024, 6, 5))
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, c.ID, guestID)
	require.NoError(t, err)

	catalog := []model.Listing{{ID: 3}, {ID: 2}, {ID: 1}}
	in, out := date(2024, 6, 2), date(2024, 6, 4)
	got, err := engine.FilterAvailable(ctx, catalog, &in, &out)
	require.NoError(t, err)
	assert.Equal(t, []model.Listing{{ID: 3}, {ID: 1}}, got)
}

func TestIsAvailable(t *testing.T) {
	f := newFakeStore()
	f.addListing(1, hostID, 10000, true)
	svc := newService(f)
	engine := booking.NewEngine(bookingStore{f})
	ctx := context.Background()

	ok, err := engine.IsAvailable(ctx, 1, date(2024, 6, 1), date(2024, 6, 5))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Create(ctx, 1, guestID, date(2024, 6, 1), date(2024, 6, 5))
	require.NoError(t, err)

	ok, err = engine.IsAvailable(ctx, 1, date(2024, 6, 4), date(2024, 6, 6))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = engine.IsAvailable(ctx, 1, date(2024, 6, 5), date(2024, 6, 7))
	require.NoError(t, err)
	assert.True(t, ok)
}
