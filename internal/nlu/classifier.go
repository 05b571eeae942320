package nlu

import (
	"strings"

	"github.com/hydroassist/go-hydro-chatbot/internal/models"
)

// rule is one entry of the ordered classifier. The first rule with any
// keyword contained in the lowercased message wins.
type rule struct {
	keywords   []string
	intent     models.Intent
	confidence float64
}

// chatRules drive the context-responder path. Order matters: a message
// containing both "refugio" and "emergencia" classifies as find_shelter
// because that rule runs first.
var chatRules = []rule{
	{[]string{"refugio", "albergue", "shelter"}, models.IntentFindShelter, 0.95},
	{[]string{"emergencia", "reportar", "ayuda urgente"}, models.IntentReportEmergency, 0.9},
	{[]string{"riesgo", "peligro", "zona peligrosa"}, models.IntentCheckRisk, 0.9},
	{[]string{"ubicación", "donde estoy", "mi ubicación"}, models.IntentShareLocation, 0.9},
	{[]string{"hola", "buenos", "buenas", "hi"}, models.IntentGreet, 0.95},
	{[]string{"adiós", "chau", "gracias", "bye"}, models.IntentGoodbye, 0.95},
}

// Classify maps a message to an intent via ordered substring matching.
// Matching is plain containment, not word-boundary aware, so a keyword
// embedded in a longer word still counts.
func Classify(message string) (models.Intent, float64) {
	lower := strings.ToLower(message)
	for _, r := range chatRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent, r.confidence
			}
		}
	}
	return models.IntentGeneral, 0.8
}

// ParseIntent implements the legacy /model/parse vocabulary, which predates
// the chat classifier and keeps its own rule order and action-style intent
// names. Confidence is a constant 0.8 for every outcome.
func ParseIntent(text string) (string, float64) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "riesgo") || strings.Contains(lower, "peligro"):
		return "consultar_riesgo", 0.8
	case strings.Contains(lower, "refugio"):
		return "buscar_refugio", 0.8
	case strings.Contains(lower, "emergencia") || strings.Contains(lower, "reportar"):
		return "reportar_emergencia", 0.8
	case strings.Contains(lower, "hola") || strings.Contains(lower, "buenos"):
		return "greet", 0.8
	case strings.Contains(lower, "adiós") || strings.Contains(lower, "chau"):
		return "goodbye", 0.8
	}
	return "greet", 0.8
}
