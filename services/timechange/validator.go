package timechange

import (
	"fmt"
	"strconv"
	"strings"

	"zmina/models"
)

// Scheduling constants, in minutes since midnight unless noted.
const (
	// Checkouts must happen strictly before 14:00; cleaning must be done by
	// then as well so the apartment is ready for the evening arrival.
	turnoverDeadline = 14 * 60
	// Minimum gap between a checkout and the start of cleaning.
	cleaningGapMinutes = 30
	// Assumed cleaning duration when checking same-day arrival overlap.
	cleaningDurationMinutes = 30
)

// ParseClock parses a "HH:MM" clock value into minutes since midnight.
// Hours run 00-23 and minutes 00-59; anything else is a format error.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}
	return h*60 + m, nil
}

// IsValidCheckout reports whether t is an acceptable checkout time: a whole
// hour strictly before 14:00.
func IsValidCheckout(t string) bool {
	mins, err := ParseClock(t)
	if err != nil || mins%60 != 0 {
		return false
	}
	return mins < turnoverDeadline
}

// IsValidCheckin reports whether t is an acceptable check-in time: a whole
// hour strictly after 14:00. 14:00 itself is rejected.
func IsValidCheckin(t string) bool {
	mins, err := ParseClock(t)
	if err != nil || mins%60 != 0 {
		return false
	}
	return mins > turnoverDeadline
}

// IsValidCleaning reports whether cleaning at t fits the checkout at
// checkoutTime: at least 30 minutes after the checkout and no later than
// 14:00. Cleaning times may fall on partial hours.
func IsValidCleaning(t string, checkoutTime string) bool {
	mins, err := ParseClock(t)
	if err != nil {
		return false
	}
	out, err := ParseClock(checkoutTime)
	if err != nil {
		return false
	}
	return mins >= out+cleaningGapMinutes && mins <= turnoverDeadline
}

// ValidateProposedTime runs the format check and the window rule for one
// proposed change, returning localized error strings. Format problems are
// reported before rule evaluation. Conflict detection is a separate concern.
func ValidateProposedTime(ct models.ChangeType, proposed string, booking *models.Booking) []string {
	mins, err := ParseClock(proposed)
	if err != nil {
		return []string{msgBadTimeFormat}
	}
	// Check-in and checkout times land on whole hours; cleaning may start on
	// a partial hour to honor the 30-minute gap.
	if ct != models.ChangeCleaning && mins%60 != 0 {
		return []string{msgBadTimeFormat}
	}

	switch ct {
	case models.ChangeCheckout:
		if !IsValidCheckout(proposed) {
			return []string{RuleMessage(ct)}
		}
	case models.ChangeCheckin:
		if !IsValidCheckin(proposed) {
			return []string{RuleMessage(ct)}
		}
	case models.ChangeCleaning:
		if booking.CheckoutTime == nil {
			return []string{msgCleaningNeedsCheckout}
		}
		if !IsValidCleaning(proposed, *booking.CheckoutTime) {
			return []string{RuleMessage(ct)}
		}
	default:
		return []string{msgBadTimeFormat}
	}
	return nil
}

// RuleMessage returns the fixed localized message for one rule kind.
func RuleMessage(ct models.ChangeType) string {
	switch ct {
	case models.ChangeCheckout:
		return msgCheckoutRule
	case models.ChangeCheckin:
		return msgCheckinRule
	case models.ChangeCleaning:
		return msgCleaningRule
	}
	return msgBadTimeFormat
}
