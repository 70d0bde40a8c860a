package timechange

import (
	"testing"

	"zmina/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutBooking(apartment, date string, checkout, cleaning *string, sameDayCheckin bool) models.Booking {
	return models.Booking{
		ID:                models.BookingID(date, apartment, models.BookingCheckout),
		ApartmentID:       apartment,
		Type:              models.BookingCheckout,
		Date:              date,
		CheckoutTime:      checkout,
		CleaningTime:      cleaning,
		HasSameDayCheckin: sameDayCheckin,
	}
}

func checkinBooking(apartment, date string, checkin *string) models.Booking {
	return models.Booking{
		ID:          models.BookingID(date, apartment, models.BookingCheckin),
		ApartmentID: apartment,
		Type:        models.BookingCheckin,
		Date:        date,
		CheckinTime: checkin,
	}
}

func TestDetectConflicts_CheckoutVsSameDayCheckin(t *testing.T) {
	target := checkoutBooking("598", "2026-09-05", strPtr("11:00"), nil, true)
	arrival := checkinBooking("598", "2026-09-05", strPtr("15:00"))
	sameDay := []models.Booking{target, arrival}

	// Equal to the arrival hour: not strictly before, conflict.
	conflicts := DetectConflicts(models.ChangeCheckout, "15:00", &target, sameDay)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "checkin", conflicts[0].Type)
	assert.Equal(t, "15:00", conflicts[0].Time)

	// Later than the arrival: conflict.
	conflicts = DetectConflicts(models.ChangeCheckout, "16:00", &target, sameDay)
	require.Len(t, conflicts, 1)

	// Strictly before the arrival: fine.
	assert.Empty(t, DetectConflicts(models.ChangeCheckout, "13:00", &target, sameDay))
}

func TestDetectConflicts_CheckoutWithoutSameDayCheckin(t *testing.T) {
	target := checkoutBooking("598", "2026-09-05", strPtr("11:00"), nil, false)
	sameDay := []models.Booking{target}

	assert.Empty(t, DetectConflicts(models.ChangeCheckout, "13:00", &target, sameDay))
}

func TestDetectConflicts_CleaningMustFinishBeforeCheckin(t *testing.T) {
	target := checkoutBooking("598", "2026-09-05", strPtr("11:00"), nil, true)
	arrival := checkinBooking("598", "2026-09-05", strPtr("15:00"))
	sameDay := []models.Booking{target, arrival}

	// Cleaning at 14:45 would still run when the guest arrives at 15:00.
	conflicts := DetectConflicts(models.ChangeCleaning, "14:45", &target, sameDay)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "checkin", conflicts[0].Type)

	// Cleaning at 14:30 wraps up exactly at the arrival.
	assert.Empty(t, DetectConflicts(models.ChangeCleaning, "14:30", &target, sameDay))
}

func TestDetectConflicts_CheckinVsUnfinishedCleaning(t *testing.T) {
	departure := checkoutBooking("598", "2026-09-05", strPtr("12:00"), strPtr("14:30"), true)
	target := checkinBooking("598", "2026-09-05", strPtr("16:00"))
	sameDay := []models.Booking{departure, target}

	// Cleaning scheduled 14:30 finishes at 15:00; arriving at that same
	// hour is fine, earlier is not.
	require.Len(t, DetectConflicts(models.ChangeCheckin, "14:45", &target, sameDay), 1)
	assert.Empty(t, DetectConflicts(models.ChangeCheckin, "15:00", &target, sameDay))
}

func TestDetectConflicts_CheckinVsUnscheduledCleaning(t *testing.T) {
	// No cleaning planned yet: the departure itself must precede the arrival.
	departure := checkoutBooking("598", "2026-09-05", strPtr("16:00"), nil, true)
	target := checkinBooking("598", "2026-09-05", nil)
	sameDay := []models.Booking{departure, target}

	conflicts := DetectConflicts(models.ChangeCheckin, "15:00", &target, sameDay)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "checkout", conflicts[0].Type)

	assert.Empty(t, DetectConflicts(models.ChangeCheckin, "17:00", &target, sameDay))
}

func TestDetectConflicts_Additive(t *testing.T) {
	// Two same-day arrivals both collide with the proposed cleaning; every
	// conflict found is reported.
	target := checkoutBooking("598", "2026-09-05", strPtr("11:00"), nil, true)
	first := checkinBooking("598", "2026-09-05", strPtr("13:00"))
	second := checkinBooking("599", "2026-09-05", strPtr("13:30"))
	second.ApartmentID = "598"
	sameDay := []models.Booking{target, first, second}

	conflicts := DetectConflicts(models.ChangeCleaning, "13:00", &target, sameDay)
	assert.Len(t, conflicts, 2)
}

func TestDetectConflicts_MalformedProposedTime(t *testing.T) {
	target := checkoutBooking("598", "2026-09-05", strPtr("11:00"), nil, true)
	assert.Empty(t, DetectConflicts(models.ChangeCheckout, "garbage", &target, []models.Booking{target}))
}
