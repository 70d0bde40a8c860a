package interpreter

import (
	"encoding/json"
	"strings"

	"zmina/models"
)

// extractJSON recovers the JSON object from a model reply that may wrap it in
// markdown fences or surrounding prose.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// ParseIntent is the single schema-validating parse at the pipeline boundary.
// Whatever the oracle sent back is reduced to one tagged outcome; downstream
// code switches on the tag and never probes optional fields again.
func ParseIntent(raw string) *models.IntentOutcome {
	payload := extractJSON(raw)
	if payload == "" {
		return &models.IntentOutcome{Kind: models.OutcomeMalformed}
	}

	var intent models.ChangeIntent
	if err := json.Unmarshal([]byte(payload), &intent); err != nil {
		return &models.IntentOutcome{Kind: models.OutcomeMalformed}
	}

	return classify(&intent)
}

func classify(intent *models.ChangeIntent) *models.IntentOutcome {
	if !intent.IsTimeChange {
		return &models.IntentOutcome{Kind: models.OutcomeNoIntent, Intent: intent}
	}

	// Ambiguity and clarification are mutually exclusive turn outcomes. A
	// response carrying both keeps the candidate list and drops the prompt.
	if len(intent.AmbiguousMatches) > 0 {
		intent.ClarificationNeeded = nil
		return &models.IntentOutcome{Kind: models.OutcomeAmbiguous, Intent: intent}
	}
	if intent.ClarificationNeeded != nil {
		return &models.IntentOutcome{Kind: models.OutcomeClarification, Intent: intent}
	}

	// A time change without a resolvable target and without a clarification
	// request is nothing we can act on this turn.
	if intent.TargetBooking == nil || intent.TargetBooking.ID == "" {
		return &models.IntentOutcome{Kind: models.OutcomeNoIntent, Intent: intent}
	}

	return &models.IntentOutcome{Kind: models.OutcomeResolved, Intent: intent}
}
