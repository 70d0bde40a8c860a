package models

// TimeChangePayload is the queued-notification payload produced after a
// successful apply and consumed by the async worker.
type TimeChangePayload struct {
	BookingID   string     `json:"bookingId"`
	ApartmentID string     `json:"apartmentId"`
	Address     string     `json:"address"`
	Date        string     `json:"date"`
	ChangeType  ChangeType `json:"changeType"`
	OldTime     string     `json:"oldTime"`
	NewTime     string     `json:"newTime"`
	ActorID     string     `json:"actorId"`
}
