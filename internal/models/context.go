package models

// Shelter is a read-only view over a shelter record, either returned by the
// emergency API or supplied by the upstream backend as chat context.
type Shelter struct {
	Name                   string  `json:"name"`
	Address                string  `json:"address"`
	Capacity               int     `json:"capacity"`
	AvailableCapacity      int     `json:"available_capacity"`
	AvailabilityPercentage float64 `json:"availability_percentage"`
	Distance               float64 `json:"distance"`
	ContactPhone           string  `json:"contact_phone"`
	IsAvailable            bool    `json:"is_available"`
}

// RiskZone is a read-only view over a risk zone supplied as chat context.
type RiskZone struct {
	RiskLevel   string `json:"risk_level"`
	Description string `json:"description"`
}

// RiskAssessment is the evaluation returned by the emergency API for a
// coordinate.
type RiskAssessment struct {
	Level              string `json:"level"`
	Description        string `json:"description"`
	RecentReportsCount int    `json:"recent_reports_count"`
}

// ShelterLookup is the outcome of a nearby-shelter query. Count is the total
// reported by the API, which may exceed len(Shelters).
type ShelterLookup struct {
	Count    int
	Shelters []Shelter
}

type UserLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ChatContext is the pre-resolved context the upstream backend attaches to a
// chat message.
type ChatContext struct {
	UserLocation   *UserLocation `json:"user_location"`
	NearbyShelters []Shelter     `json:"nearby_shelters"`
	RiskZones      []RiskZone    `json:"risk_zones"`
	EmergencyLevel string        `json:"emergency_level"`
}

type ChatRequest struct {
	Message string `json:"message"`
	ChatContext
}

type ChatResponse struct {
	Message    string  `json:"message"`
	Response   string  `json:"response"`
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}
