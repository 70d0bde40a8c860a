package interpreter

import (
	"context"

	"zmina/models"
	"zmina/utils"

	"go.uber.org/zap"
)

// Oracle is the raw text-generation backend. The production implementation
// is the Gemini client; tests substitute a canned one.
type Oracle interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Request carries everything the interpreter may use for one turn. Candidate
// bookings are already scoped to the user's permissions by the caller.
type Request struct {
	Text                 string
	Context              *models.ConversationContext
	IsAdmin              bool
	AssignedApartmentIDs []string
	CandidateBookings    []models.Booking
}

// Interpreter turns one free-form message into a triaged intent outcome.
type Interpreter interface {
	Interpret(ctx context.Context, req Request) (*models.IntentOutcome, error)
}

// DefaultInterpreter drives the oracle and parses its reply. The oracle's
// output is untrusted: anything that fails the schema parse degrades to a
// malformed outcome rather than an error surfaced to the user.
type DefaultInterpreter struct {
	Oracle Oracle
}

func NewDefaultInterpreter(oracle Oracle) *DefaultInterpreter {
	return &DefaultInterpreter{Oracle: oracle}
}

func (i *DefaultInterpreter) Interpret(ctx context.Context, req Request) (*models.IntentOutcome, error) {
	prompt := BuildPrompt(req)

	raw, err := i.Oracle.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	outcome := ParseIntent(raw)
	if outcome.Kind == models.OutcomeMalformed {
		utils.GetLogger().Warn("interpreter returned unparseable output",
			zap.Int("rawLen", len(raw)))
	}
	return outcome, nil
}
