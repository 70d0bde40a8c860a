package timechange

import (
	"fmt"

	"zmina/models"
)

// DetectConflicts checks a proposed change against the other bookings of the
// same apartment on the same day. Conflicts are additive; every collision
// found is reported and a non-empty result forces the change invalid
// regardless of the window rules.
func DetectConflicts(ct models.ChangeType, proposed string, target *models.Booking, sameDay []models.Booking) []models.Conflict {
	mins, err := ParseClock(proposed)
	if err != nil {
		return nil // format errors are reported by the validator
	}

	var conflicts []models.Conflict
	for i := range sameDay {
		other := &sameDay[i]
		if other.ID == target.ID {
			continue
		}

		switch ct {
		case models.ChangeCheckout:
			// A same-day arrival must come after the departure.
			if target.HasSameDayCheckin && other.Type == models.BookingCheckin && other.CheckinTime != nil {
				if in, err := ParseClock(*other.CheckinTime); err == nil && mins >= in {
					conflicts = append(conflicts, models.Conflict{
						Type:        string(models.BookingCheckin),
						Time:        *other.CheckinTime,
						Description: fmt.Sprintf("%s %s", msgCheckoutAfterCheckin, *other.CheckinTime),
					})
				}
			}

		case models.ChangeCleaning:
			// Cleaning has to be finished before the same-day arrival.
			if other.Type == models.BookingCheckin && other.CheckinTime != nil {
				if in, err := ParseClock(*other.CheckinTime); err == nil && mins+cleaningDurationMinutes > in {
					conflicts = append(conflicts, models.Conflict{
						Type:        string(models.BookingCheckin),
						Time:        *other.CheckinTime,
						Description: fmt.Sprintf("%s %s", msgCleaningOverlapsCheckin, *other.CheckinTime),
					})
				}
			}

		case models.ChangeCheckin:
			// The previous guest must leave and cleaning must wrap up before
			// the new arrival.
			if other.Type != models.BookingCheckout {
				continue
			}
			if other.CleaningTime != nil {
				if cl, err := ParseClock(*other.CleaningTime); err == nil && cl+cleaningDurationMinutes > mins {
					conflicts = append(conflicts, models.Conflict{
						Type:        string(models.ChangeCleaning),
						Time:        *other.CleaningTime,
						Description: fmt.Sprintf("%s %s", msgCheckinBeforeCleaningDone, *other.CleaningTime),
					})
				}
			} else if other.CheckoutTime != nil {
				// Cleaning not scheduled yet: the departure itself must at
				// least precede the new arrival.
				if out, err := ParseClock(*other.CheckoutTime); err == nil && out >= mins {
					conflicts = append(conflicts, models.Conflict{
						Type:        string(models.BookingCheckout),
						Time:        *other.CheckoutTime,
						Description: fmt.Sprintf("%s %s", msgCheckinBeforeCheckout, *other.CheckoutTime),
					})
				}
			}
		}
	}
	return conflicts
}
