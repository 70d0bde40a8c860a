package notify

import (
	"context"
	"fmt"

	staffRepo "zmina/database/repository/staff"
	"zmina/models"
	"zmina/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService pushes applied-change notices to the staff assigned to
// the apartment. Delivery is best effort; the change is already committed.
type NotificationService interface {
	SendTimeChangePush(ctx context.Context, p models.TimeChangePayload) error
}

// DefaultNotificationService is the FCM-backed implementation.
type DefaultNotificationService struct {
	Staff staffRepo.StaffRepository
}

var changeTitle = map[models.ChangeType]string{
	models.ChangeCheckout: "Змінено час виїзду",
	models.ChangeCheckin:  "Змінено час заїзду",
	models.ChangeCleaning: "Змінено час прибирання",
}

// SendTimeChangePush notifies every assignee of the apartment except the
// actor who made the change.
func (s *DefaultNotificationService) SendTimeChangePush(ctx context.Context, p models.TimeChangePayload) error {
	if utils.FCMClient == nil {
		return nil // push disabled
	}
	logger := utils.GetLogger()

	assignees, err := s.Staff.GetAssigneesForApartment(ctx, p.ApartmentID)
	if err != nil {
		return fmt.Errorf("lookup assignees for %s: %w", p.ApartmentID, err)
	}

	title := changeTitle[p.ChangeType]
	body := fmt.Sprintf("%s (кв. %s), %s — %s", p.Address, p.ApartmentID, p.Date, p.NewTime)
	data := map[string]string{
		"bookingId":  p.BookingID,
		"changeType": string(p.ChangeType),
		"newTime":    p.NewTime,
	}

	for _, userID := range assignees {
		if userID == p.ActorID {
			continue
		}
		u, err := s.Staff.GetUser(ctx, userID)
		if err != nil || u.FCMToken == "" {
			continue
		}

		msg := &messaging.Message{
			Token: u.FCMToken,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}
		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			logger.Warn("failed to send change push",
				zap.String("userId", userID), zap.Error(err))
		}
	}
	return nil
}
