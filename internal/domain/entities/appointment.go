package entities

// Appointment is a booked cita as stored by the history service. The id is
// opaque and issued by that service, never by this orchestrator.
type Appointment struct {
	ID         string `json:"id"`
	PatientDNI string `json:"dniPaciente"`
	DoctorDNI  string `json:"dniDoctor"`
	Day        string `json:"fecha"`
	Time       string `json:"hora"`
}

// DoctorSummary is the doctor view embedded in a patient's appointment list.
type DoctorSummary struct {
	FirstName string `json:"nombres"`
	LastName  string `json:"apellidos"`
	Specialty string `json:"especialidad"`
}

// DoctorLookupFailed is substituted for the doctor field of a single list
// item when that item's directory lookup fails. The rest of the list is
// still returned.
const DoctorLookupFailed = "Error al obtener datos del doctor"

// PatientAppointment is one enriched entry of the per-patient listing.
// Doctor holds either a DoctorSummary or the DoctorLookupFailed marker.
type PatientAppointment struct {
	ID     string `json:"id,omitempty"`
	Day    string `json:"fecha"`
	Time   string `json:"hora"`
	Doctor any    `json:"doctor"`
}
