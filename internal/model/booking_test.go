package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codexoft-ke/alx-travel-app-0x02/internal/model"
)

var allStatuses = []model.BookingStatus{
	model.BookingPending,
	model.BookingConfirmed,
	model.BookingCancelled,
	model.BookingCompleted,
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, model.BookingStatus("pending").Valid())
	assert.False(t, model.BookingStatus("UNKNOWN").Valid())
	assert.False(t, model.BookingStatus("").Valid())
}

func TestBookingTransitions(t *testing.T) {
	allowed := map[[2]model.BookingStatus]bool{
		{model.BookingPending, model.BookingConfirmed}:   true,
		{model.BookingPending, model.BookingCancelled}:   true,
		{model.BookingConfirmed, model.BookingCancelled}: true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]model.BookingStatus{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, model.BookingPending.Terminal())
	assert.False(t, model.BookingConfirmed.Terminal())
	assert.True(t, model.BookingCancelled.Terminal())
	assert.True(t, model.BookingCompleted.Terminal())
	assert.False(t, model.BookingStatus("UNKNOWN").Terminal())
}

func TestBookingStatusBlocking(t *testing.T) {
	assert.True(t, model.BookingPending.Blocking())
	assert.True(t, model.BookingConfirmed.Blocking())
	assert.False(t, model.BookingCancelled.Blocking())
	assert.False(t, model.BookingCompleted.Blocking())
}

func TestBookingNights(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC) }
	b := model.Booking{CheckInDate: day(1), CheckOutDate: day(5)}
	assert.Equal(t, 4, b.Nights())
	b.CheckOutDate = day(2)
	assert.Equal(t, 1, b.Nights())
}
