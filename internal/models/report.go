package models

// EmergencyReport is the payload submitted to the emergency API. The API is
// the system of record; the report is not stored locally. Reporter identity
// fields are always sent empty.
type EmergencyReport struct {
	EventType     EventType `json:"event_type"`
	Severity      string    `json:"severity"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Address       string    `json:"address"`
	Description   string    `json:"description"`
	ReporterName  string    `json:"reporter_name"`
	ReporterPhone string    `json:"reporter_phone"`
	ReporterEmail string    `json:"reporter_email"`
}
