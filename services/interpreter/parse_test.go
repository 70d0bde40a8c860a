package interpreter

import (
	"testing"

	"zmina/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent_ResolvedChange(t *testing.T) {
	raw := `{
		"isTimeChange": true,
		"changeType": "checkout",
		"targetBooking": {"id": "2026-09-05_598_checkout", "type": "checkout", "date": "2026-09-05", "apartmentId": "598", "address": "вул. Шевченка 12", "guestName": "Husak"},
		"suggestedTime": "11:00",
		"reasoning": "guest asked to leave earlier",
		"validation": {"isValid": true, "errors": [], "conflicts": []}
	}`

	outcome := ParseIntent(raw)
	require.Equal(t, models.OutcomeResolved, outcome.Kind)
	require.NotNil(t, outcome.Intent.TargetBooking)
	assert.Equal(t, "2026-09-05_598_checkout", outcome.Intent.TargetBooking.ID)
	assert.Equal(t, models.ChangeCheckout, outcome.Intent.ChangeType)
	assert.Equal(t, "11:00", outcome.Intent.SuggestedTime)
}

func TestParseIntent_MarkdownFences(t *testing.T) {
	raw := "```json\n{\"isTimeChange\": true, \"changeType\": \"checkin\", \"targetBooking\": {\"id\": \"b1\"}, \"suggestedTime\": \"16:00\"}\n```"

	outcome := ParseIntent(raw)
	require.Equal(t, models.OutcomeResolved, outcome.Kind)
	assert.Equal(t, "b1", outcome.Intent.TargetBooking.ID)
}

func TestParseIntent_SurroundingProse(t *testing.T) {
	raw := `Here is the interpretation: {"isTimeChange": false} — let me know if wrong.`

	outcome := ParseIntent(raw)
	assert.Equal(t, models.OutcomeNoIntent, outcome.Kind)
}

func TestParseIntent_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not json", raw: "sorry, I cannot help with that"},
		{name: "broken object", raw: `{"isTimeChange": `},
		{name: "wrong field type", raw: `{"isTimeChange": "yes"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := ParseIntent(tt.raw)
			assert.Equal(t, models.OutcomeMalformed, outcome.Kind)
		})
	}
}

func TestParseIntent_Ambiguous(t *testing.T) {
	raw := `{
		"isTimeChange": true,
		"changeType": "checkout",
		"suggestedTime": "11:00",
		"ambiguousMatches": [
			{"id": "2026-09-05_598_checkout", "date": "2026-09-05", "apartmentId": "598", "guestName": "Husak"},
			{"id": "2026-09-08_598_checkout", "date": "2026-09-08", "apartmentId": "598", "guestName": "Husak"}
		]
	}`

	outcome := ParseIntent(raw)
	require.Equal(t, models.OutcomeAmbiguous, outcome.Kind)
	assert.Len(t, outcome.Intent.AmbiguousMatches, 2)
}

func TestParseIntent_AmbiguousWinsOverClarification(t *testing.T) {
	// The two outcomes are mutually exclusive; a response carrying both keeps
	// the candidate list.
	raw := `{
		"isTimeChange": true,
		"ambiguousMatches": [{"id": "b1"}],
		"clarificationNeeded": {"type": "date", "message": "which date?"}
	}`

	outcome := ParseIntent(raw)
	require.Equal(t, models.OutcomeAmbiguous, outcome.Kind)
	assert.Nil(t, outcome.Intent.ClarificationNeeded)
}

func TestParseIntent_Clarification(t *testing.T) {
	raw := `{
		"isTimeChange": true,
		"changeType": "checkout",
		"clarificationNeeded": {
			"type": "date",
			"message": "Уточніть дату",
			"availableOptions": [
				{"value": "2026-09-05", "display": "05.09.2026"},
				{"value": "2026-09-08", "display": "08.09.2026"}
			]
		}
	}`

	outcome := ParseIntent(raw)
	require.Equal(t, models.OutcomeClarification, outcome.Kind)
	require.NotNil(t, outcome.Intent.ClarificationNeeded)
	assert.Equal(t, "date", outcome.Intent.ClarificationNeeded.Type)
	assert.Len(t, outcome.Intent.ClarificationNeeded.AvailableOptions, 2)
}

func TestParseIntent_MissingTargetIsNotActionable(t *testing.T) {
	raw := `{"isTimeChange": true, "changeType": "checkout", "suggestedTime": "11:00", "targetBooking": null}`

	outcome := ParseIntent(raw)
	assert.Equal(t, models.OutcomeNoIntent, outcome.Kind)
}

func TestBuildPrompt_ContainsScopeAndMessage(t *testing.T) {
	req := Request{
		Text:                 "перенеси виїзд на 11:00",
		IsAdmin:              false,
		AssignedApartmentIDs: []string{"598", "432"},
	}
	prompt := BuildPrompt(req)
	assert.Contains(t, prompt, "598, 432")
	assert.Contains(t, prompt, "перенеси виїзд на 11:00")
	assert.Contains(t, prompt, "ambiguousMatches")
}
