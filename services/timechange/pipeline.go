package timechange

import (
	"context"
	"errors"
	"time"

	bookingRepo "zmina/database/repository/booking"
	conversationRepo "zmina/database/repository/conversation"
	staffRepo "zmina/database/repository/staff"
	"zmina/models"
	"zmina/services/interpreter"
	"zmina/utils"

	"go.uber.org/zap"
)

// DefaultTimeChangeService orchestrates one chat turn: load conversation
// state, call the interpreter, triage its outcome, validate locally,
// authorize and apply. All booking mutation happens in the repository's
// transaction, so an abandoned turn leaves no partial state.
type DefaultTimeChangeService struct {
	Bookings      bookingRepo.BookingRepository
	Conversations conversationRepo.ConversationRepository
	Staff         staffRepo.StaffRepository
	Guard         *PermissionGuard
	Interpreter   interpreter.Interpreter
	Notifier      Notifier // optional
	WindowDays    int

	// Now is the clock used for the booking window; overridable in tests.
	Now func() time.Time
}

func (s *DefaultTimeChangeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultTimeChangeService) windowDays() int {
	if s.WindowDays > 0 {
		return s.WindowDays
	}
	return 10
}

// HandleMessage runs the full pipeline for one incoming message.
func (s *DefaultTimeChangeService) HandleMessage(ctx context.Context, userID, text string) ([]string, error) {
	logger := utils.GetLogger()

	user, err := s.Staff.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrUserNotFound) {
			return []string{msgAccessDenied}, nil
		}
		return nil, err
	}

	state, err := s.Conversations.Load(ctx, userID)
	if err != nil {
		logger.Warn("failed to load conversation state, starting fresh",
			zap.String("userId", userID), zap.Error(err))
		state = &models.ConversationState{UserID: userID}
	}

	var assigned []string
	if !user.IsAdmin() {
		assigned, err = s.Guard.AssignedApartments(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	candidates, err := s.candidateBookings(ctx, user, assigned)
	if err != nil {
		logger.Warn("failed to load candidate bookings",
			zap.String("userId", userID), zap.Error(err))
	}

	outcome, err := s.Interpreter.Interpret(ctx, interpreter.Request{
		Text:                 text,
		Context:              state.LastContext,
		IsAdmin:              user.IsAdmin(),
		AssignedApartmentIDs: assigned,
		CandidateBookings:    candidates,
	})
	if err != nil {
		// Oracle failure degrades to inaction: nothing happens this turn and
		// the conversation state stays untouched.
		logger.Error("interpreter call failed",
			zap.String("userId", userID), zap.Error(err))
		return nil, nil
	}

	switch outcome.Kind {
	case models.OutcomeMalformed:
		logger.Warn("interpreter produced unusable output", zap.String("userId", userID))
		return nil, nil

	case models.OutcomeNoIntent:
		s.saveState(ctx, userID, text, state.LastContext)
		return nil, nil

	case models.OutcomeAmbiguous:
		intent := outcome.Intent
		s.saveState(ctx, userID, text, &models.ConversationContext{
			ChangeType:        intent.ChangeType,
			SuggestedTime:     intent.SuggestedTime,
			PendingCandidates: intent.AmbiguousMatches,
		})
		return []string{ambiguousPrompt(intent.AmbiguousMatches)}, nil

	case models.OutcomeClarification:
		intent := outcome.Intent
		s.saveState(ctx, userID, text, &models.ConversationContext{
			ChangeType:           intent.ChangeType,
			SuggestedTime:        intent.SuggestedTime,
			PendingClarification: intent.ClarificationNeeded,
		})
		return []string{clarificationPrompt(intent.ClarificationNeeded)}, nil

	case models.OutcomeResolved:
		return s.handleResolved(ctx, user, text, outcome.Intent)
	}

	return nil, nil
}

// ResetConversation drops the user's carry-over context.
func (s *DefaultTimeChangeService) ResetConversation(ctx context.Context, userID string) error {
	return s.Conversations.Reset(ctx, userID)
}

// handleResolved applies the primary change and then each sibling of a
// compound request independently. A sibling's rejection never rolls back an
// already applied change; every change gets its own reply.
func (s *DefaultTimeChangeService) handleResolved(ctx context.Context, user *models.StaffUser, text string, intent *models.ChangeIntent) ([]string, error) {
	replies := make([]string, 0, 1+len(intent.MultipleChanges))
	replies = append(replies, s.processChange(ctx, user, intent))

	for i := range intent.MultipleChanges {
		sibling := &intent.MultipleChanges[i]
		if sibling.TargetBooking == nil || sibling.TargetBooking.ID == "" {
			replies = append(replies, msgNotFound)
			continue
		}
		replies = append(replies, s.processChange(ctx, user, sibling))
	}

	s.saveState(ctx, user.ID, text, &models.ConversationContext{
		Booking:       intent.TargetBooking,
		ChangeType:    intent.ChangeType,
		SuggestedTime: intent.SuggestedTime,
	})
	return replies, nil
}

// processChange authorizes, re-validates and applies one change, returning
// the user-facing reply for it.
func (s *DefaultTimeChangeService) processChange(ctx context.Context, user *models.StaffUser, intent *models.ChangeIntent) string {
	logger := utils.GetLogger()
	target := intent.TargetBooking

	// Permission comes first so a denied user learns nothing about the
	// apartment's schedule. The candidate set fed to the interpreter was
	// already scoped; this is the definitive check on the resolved target.
	allowed, err := s.Guard.Authorize(ctx, user, target.ApartmentID)
	if err != nil {
		logger.Error("authorization lookup failed",
			zap.String("userId", user.ID), zap.Error(err))
		return msgTryAgain
	}
	if !allowed {
		return msgAccessDenied
	}

	booking, err := s.Bookings.GetByID(ctx, target.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return msgNotFound
		}
		logger.Error("failed to load booking",
			zap.String("bookingId", target.ID), zap.Error(err))
		return msgTryAgain
	}

	// The oracle's validation object is advisory. Re-run format, window and
	// conflict checks locally and let the local result win.
	oracleValid := intent.Validation.IsValid
	errs := ValidateProposedTime(intent.ChangeType, intent.SuggestedTime, booking)
	var conflicts []models.Conflict
	if len(errs) == 0 {
		sameDay, err := s.Bookings.GetByApartmentAndDate(ctx, booking.ApartmentID, booking.Date)
		if err != nil {
			logger.Error("failed to load same-day bookings",
				zap.String("bookingId", booking.ID), zap.Error(err))
			return msgTryAgain
		}
		conflicts = DetectConflicts(intent.ChangeType, intent.SuggestedTime, booking, sameDay)
	}

	// An invalid result always carries at least one error string, so a
	// conflict-only rejection surfaces the conflict descriptions as errors.
	valErrs := errs
	if len(valErrs) == 0 {
		for _, c := range conflicts {
			valErrs = append(valErrs, c.Description)
		}
	}
	intent.Validation = models.IntentValidation{
		IsValid:   len(errs) == 0 && len(conflicts) == 0,
		Errors:    valErrs,
		Conflicts: conflicts,
	}
	if !intent.Validation.IsValid || !oracleValid {
		// An invalid proposal is never silently auto-confirmed.
		intent.Confirmed = false
	}
	if !intent.Validation.IsValid {
		return rejectionMessage(errs, conflicts)
	}

	entry, err := s.Bookings.ApplyTimeChange(ctx, booking.ID, intent.ChangeType, intent.SuggestedTime, user.ID, intent.Reasoning)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotFound):
			return msgNotFound
		case errors.Is(err, bookingRepo.ErrTypeMismatch):
			return msgTypeMismatch
		case errors.Is(err, bookingRepo.ErrTxnConflict):
			logger.Warn("apply lost to concurrent writer",
				zap.String("bookingId", booking.ID))
			return msgTryAgain
		}
		logger.Error("apply failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return msgTryAgain
	}

	if s.Notifier != nil {
		payload := models.TimeChangePayload{
			BookingID:   entry.BookingID,
			ApartmentID: entry.ApartmentID,
			Address:     entry.Address,
			Date:        entry.Date,
			ChangeType:  entry.ChangeType,
			OldTime:     entry.OldTime,
			NewTime:     entry.NewTime,
			ActorID:     entry.UpdatedBy,
		}
		if err := s.Notifier.EnqueueTimeChange(ctx, payload); err != nil {
			logger.Warn("failed to enqueue change notification",
				zap.String("bookingId", entry.BookingID), zap.Error(err))
		}
	}

	return successMessage(entry)
}

// candidateBookings loads the upcoming booking window, filtered to the
// user's assigned apartments for non-admins.
func (s *DefaultTimeChangeService) candidateBookings(ctx context.Context, user *models.StaffUser, assigned []string) ([]models.Booking, error) {
	now := s.now()
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, s.windowDays()).Format("2006-01-02")

	all, err := s.Bookings.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return all, nil
	}

	allowed := make(map[string]bool, len(assigned))
	for _, id := range assigned {
		allowed[id] = true
	}
	var scoped []models.Booking
	for _, b := range all {
		if allowed[b.ApartmentID] {
			scoped = append(scoped, b)
		}
	}
	return scoped, nil
}

func (s *DefaultTimeChangeService) saveState(ctx context.Context, userID, text string, next *models.ConversationContext) {
	if err := s.Conversations.Save(ctx, userID, text, next); err != nil {
		utils.GetLogger().Warn("failed to save conversation state",
			zap.String("userId", userID), zap.Error(err))
	}
}
