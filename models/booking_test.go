package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		// Terminal durumlardan çıkış yok.
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCompleted, BookingStatusConfirmed, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, ValidTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func validBookingRequest() *CreateBookingRequest {
	return &CreateBookingRequest{
		CustomerName:  "Ayşe Yılmaz",
		CustomerEmail: "ayse@example.com",
		CustomerPhone: "+90 532 123 45 67",
		TreatmentID:   "abc123",
		SlotAt:        time.Now().Add(48 * time.Hour),
	}
}

func TestCreateBookingRequestValidate(t *testing.T) {
	require.NoError(t, validBookingRequest().Validate())

	r := validBookingRequest()
	r.CustomerName = "A"
	require.Error(t, r.Validate(), "single-char name")

	r = validBookingRequest()
	r.CustomerEmail = "not-an-email"
	require.Error(t, r.Validate())

	r = validBookingRequest()
	r.CustomerPhone = "123"
	require.Error(t, r.Validate(), "phone too short")

	r = validBookingRequest()
	r.TreatmentID = ""
	require.Error(t, r.Validate())

	r = validBookingRequest()
	r.SlotAt = time.Now().Add(-time.Hour)
	require.Error(t, r.Validate(), "past slot must be rejected")
}

// Validate input'u normalize eder — email küçük harfe, isim trim'lenir.
func TestCreateBookingRequestNormalizes(t *testing.T) {
	r := validBookingRequest()
	r.CustomerEmail = "  AYSE@Example.COM "
	r.CustomerName = "  Ayşe Yılmaz  "

	require.NoError(t, r.Validate())
	require.Equal(t, "ayse@example.com", r.CustomerEmail)
	require.Equal(t, "Ayşe Yılmaz", r.CustomerName)
}

func TestUpdateBookingStatusRequestValidate(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed,
		BookingStatusCancelled, BookingStatusCompleted,
	} {
		r := UpdateBookingStatusRequest{Status: status}
		require.NoError(t, r.Validate())
	}

	r := UpdateBookingStatusRequest{Status: "archived"}
	require.Error(t, r.Validate())
}
