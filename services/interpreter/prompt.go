package interpreter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Matching precedence the oracle is instructed to follow when a message could
// identify a booking several ways at once. Kept in one place so the contract
// is explicit and testable.
const matchPrecedence = "booking id, then apartment id or address, then guest name"

const schemaInstructions = `Respond with a single JSON object and nothing else, using this schema:
{
  "isTimeChange": bool,
  "changeType": "checkin" | "checkout" | "cleaning",
  "targetBooking": {"id", "type", "date", "apartmentId", "address", "guestName"} or null,
  "suggestedTime": "HH:00",
  "reasoning": string,
  "confirmed": bool,
  "validation": {"isValid": bool, "errors": [string], "conflicts": [{"type", "time", "description"}]},
  "ambiguousMatches": [targetBooking-shaped refs],
  "clarificationNeeded": {"type": "date"|"apartment"|"guest"|"time", "message", "availableOptions": [{"value", "display"}]} or null,
  "multipleChanges": [objects of this same schema]
}
Rules:
- If the message is not about changing a check-in, check-out or cleaning time, set isTimeChange to false.
- If several bookings could match, list them all in ambiguousMatches and do not pick one.
- If a detail is missing (date, apartment, guest or time), fill clarificationNeeded instead of guessing.
- Never set both ambiguousMatches and clarificationNeeded.
- When a message could match bookings different ways, resolve by precedence: ` + matchPrecedence + `.`

// BuildPrompt assembles the oracle prompt for one turn: role framing, the
// carry-over context, the permission-scoped candidate bookings and the reply
// schema.
func BuildPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("You interpret apartment scheduling messages from cleaning staff.\n")
	if req.IsAdmin {
		sb.WriteString("The sender is an administrator with access to every apartment.\n")
	} else {
		sb.WriteString(fmt.Sprintf("The sender may only manage these apartments: %s.\n",
			strings.Join(req.AssignedApartmentIDs, ", ")))
	}

	if req.Context != nil {
		if b, err := json.Marshal(req.Context); err == nil {
			sb.WriteString("Previous turn context:\n")
			sb.Write(b)
			sb.WriteString("\n")
		}
	}

	if b, err := json.Marshal(req.CandidateBookings); err == nil {
		sb.WriteString("Upcoming bookings the message may refer to:\n")
		sb.Write(b)
		sb.WriteString("\n")
	}

	sb.WriteString(schemaInstructions)
	sb.WriteString("\n\nMessage:\n")
	sb.WriteString(req.Text)

	return sb.String()
}
