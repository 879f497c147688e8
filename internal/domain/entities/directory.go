package entities

// Patient as served by the patient directory. Attributes are owned by the
// directory; this service only checks existence and passes data through.
type Patient struct {
	DNI       string `json:"dni"`
	FirstName string `json:"nombres"`
	LastName  string `json:"apellidos"`
	BirthDate string `json:"fechaNacimiento"`
	Insurance string `json:"seguro"`
}

// Doctor as served by the doctor directory.
type Doctor struct {
	DNI       string `json:"dni"`
	FirstName string `json:"nombres"`
	LastName  string `json:"apellidos"`
	Specialty string `json:"especialidad"`
}
