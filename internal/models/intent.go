package models

// Intent is the closed set of categories a message is classified into.
type Intent string

const (
	IntentFindShelter     Intent = "find_shelter"
	IntentReportEmergency Intent = "report_emergency"
	IntentCheckRisk       Intent = "check_risk"
	IntentShareLocation   Intent = "share_location"
	IntentGreet           Intent = "greet"
	IntentGoodbye         Intent = "goodbye"
	IntentGeneral         Intent = "general"
)

// EventType categorizes a reported emergency for the upstream API.
type EventType string

const (
	EventTypeFlood          EventType = "flood"
	EventTypeContamination  EventType = "contamination"
	EventTypeInfrastructure EventType = "infrastructure"
	EventTypeDrought        EventType = "drought"
	EventTypeOther          EventType = "other"
)
