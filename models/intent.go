package models

// BookingRef is a lightweight booking reference as reported by the
// interpreter. It carries enough to identify and describe a candidate
// without loading the full document.
type BookingRef struct {
	ID          string      `json:"id"`
	Type        BookingType `json:"type"`
	Date        string      `json:"date"`
	ApartmentID string      `json:"apartmentId"`
	Address     string      `json:"address"`
	GuestName   string      `json:"guestName"`
}

// Conflict describes one same-day scheduling collision.
type Conflict struct {
	Type        string `json:"type"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// IntentValidation is the interpreter's advisory judgement of a proposed
// change. The pipeline re-validates locally and reconciles; a non-empty
// conflict or error list always forces IsValid to false.
type IntentValidation struct {
	IsValid   bool       `json:"isValid"`
	Errors    []string   `json:"errors"`
	Conflicts []Conflict `json:"conflicts"`
}

// ClarificationOption is one choice offered back to the user.
type ClarificationOption struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

// Clarification asks the user to narrow down an under-specified request.
// Type is one of "date", "apartment", "guest" or "time".
type Clarification struct {
	Type             string                `json:"type"`
	Message          string                `json:"message"`
	AvailableOptions []ClarificationOption `json:"availableOptions"`
}

// ChangeIntent is the structured output of the interpreter for one turn.
type ChangeIntent struct {
	IsTimeChange        bool             `json:"isTimeChange"`
	ChangeType          ChangeType       `json:"changeType"`
	TargetBooking       *BookingRef      `json:"targetBooking"`
	SuggestedTime       string           `json:"suggestedTime"`
	Reasoning           string           `json:"reasoning"`
	Confirmed           bool             `json:"confirmed"`
	Validation          IntentValidation `json:"validation"`
	AmbiguousMatches    []BookingRef     `json:"ambiguousMatches"`
	ClarificationNeeded *Clarification   `json:"clarificationNeeded"`
	MultipleChanges     []ChangeIntent   `json:"multipleChanges"`
}

// OutcomeKind tags the triage result of one interpreter response. All
// downstream code switches on this tag instead of probing optional fields.
type OutcomeKind string

const (
	OutcomeMalformed     OutcomeKind = "malformed"
	OutcomeNoIntent      OutcomeKind = "no_intent"
	OutcomeResolved      OutcomeKind = "resolved"
	OutcomeAmbiguous     OutcomeKind = "ambiguous"
	OutcomeClarification OutcomeKind = "clarification"
)

// IntentOutcome is the tagged triage of one interpreter response.
// Intent is nil only for OutcomeMalformed.
type IntentOutcome struct {
	Kind   OutcomeKind
	Intent *ChangeIntent
}
