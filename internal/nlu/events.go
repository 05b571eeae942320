package nlu

import (
	"strings"

	"github.com/hydroassist/go-hydro-chatbot/internal/models"
)

// eventRules map report wording to an event type, first match wins.
var eventRules = []struct {
	keywords []string
	event    models.EventType
}{
	{[]string{"inundación", "agua"}, models.EventTypeFlood},
	{[]string{"contaminación"}, models.EventTypeContamination},
	{[]string{"infraestructura", "falla"}, models.EventTypeInfrastructure},
	{[]string{"sequía"}, models.EventTypeDrought},
}

// DetectEventType classifies the emergency being reported. The first
// tipo_evento entity wins when present; otherwise the raw message text is
// scanned with the same rules.
func DetectEventType(entities []models.Entity, text string) models.EventType {
	value := text
	for _, ent := range entities {
		if ent.Entity == "tipo_evento" {
			value = ent.Value
			break
		}
	}
	return classifyEvent(value)
}

func classifyEvent(value string) models.EventType {
	lower := strings.ToLower(value)
	for _, r := range eventRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.event
			}
		}
	}
	return models.EventTypeOther
}
