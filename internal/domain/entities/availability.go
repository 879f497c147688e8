package entities

// Slot is a bookable time window of a doctor. A slot is unique per
// (doctor, day, time); it carries no other metadata. Booking consumes the
// slot, cancellation re-creates it.
type Slot struct {
	Day  string `json:"dia"`
	Time string `json:"hora"`
}
