package render

import (
	"fmt"
	"strconv"

	"github.com/hydroassist/go-hydro-chatbot/internal/models"
)

// ContextResponse templates a reply for the context-enriched path. All the
// data it needs was already resolved by the caller; no outbound call is made.
func ContextResponse(intent models.Intent, ctx models.ChatContext) string {
	switch intent {
	case models.IntentFindShelter:
		return shelterContextResponse(ctx.NearbyShelters)

	case models.IntentReportEmergency:
		if ctx.EmergencyLevel == "high" {
			return "He registrado tu reporte de emergencia con ALTA PRIORIDAD debido a la actividad reciente en tu zona. " +
				"Las autoridades han sido notificadas inmediatamente. Mantente en un lugar seguro y sigue las instrucciones oficiales."
		}
		return "He registrado tu reporte de emergencia. Las autoridades competentes han sido notificadas y recibirás seguimiento. " +
			"Mientras tanto, si la situación empeora, no dudes en contactar servicios de emergencia (911)."

	case models.IntentCheckRisk:
		return riskContextResponse(ctx.RiskZones)

	case models.IntentShareLocation:
		if ctx.UserLocation != nil {
			return fmt.Sprintf("He recibido tu ubicación: %.4f, %.4f. Con esta información puedo ayudarte mejor a encontrar "+
				"refugios cercanos y evaluar riesgos en tu zona. ¿En qué más puedo asistirte?",
				ctx.UserLocation.Lat, ctx.UserLocation.Lng)
		}
		return "Para darte la mejor asistencia, necesito tu ubicación. ¿Puedes compartirla usando el botón 'Compartir Ubicación' en el mapa?"

	case models.IntentGreet:
		locationMsg := ""
		if ctx.UserLocation != nil {
			locationMsg = " en tu ubicación actual"
		}
		return fmt.Sprintf("¡Hola! Soy Hydro, tu asistente para emergencias hídricas. Estoy aquí para ayudarte a encontrar "+
			"refugios, evaluar riesgos y reportar emergencias%s. ¿En qué puedo asistirte hoy?", locationMsg)

	case models.IntentGoodbye:
		return "Gracias por usar HydroAssist. Recuerda que estoy disponible 24/7 para cualquier emergencia hídrica. " +
			"¡Mantente seguro y no dudes en volver si necesitas ayuda!"
	}

	return "Entiendo tu consulta. Puedo ayudarte con: 🏠 Encontrar refugios cercanos, ⚠️ Evaluar riesgos en tu zona, " +
		"🚨 Reportar emergencias, 📍 Analizar tu ubicación. ¿Con cuál te gustaría empezar?"
}

func shelterContextResponse(shelters []models.Shelter) string {
	switch {
	case len(shelters) == 0:
		return "No encontré refugios en tu área inmediata. Te recomiendo contactar a las autoridades locales o buscar " +
			"en un radio más amplio. ¿Puedes compartir tu ubicación exacta?"

	case len(shelters) == 1:
		s := shelters[0]
		return fmt.Sprintf("Encontré 1 refugio disponible: %s a %s km de tu ubicación. Tiene capacidad para %d personas "+
			"y actualmente tiene %d lugares disponibles.",
			s.Name, formatDistance(s.Distance), s.Capacity, s.AvailableCapacity)

	default:
		// Closest by distance; ties keep the first in caller order.
		closest := shelters[0]
		for _, s := range shelters[1:] {
			if s.Distance < closest.Distance {
				closest = s
			}
		}
		return fmt.Sprintf("Encontré %d refugios cercanos. El más cercano es %s a %s km. "+
			"Te he marcado todos los refugios disponibles en el mapa.",
			len(shelters), closest.Name, formatDistance(closest.Distance))
	}
}

func riskContextResponse(zones []models.RiskZone) string {
	if len(zones) == 0 {
		return "No detecto zonas de riesgo inmediato en tu ubicación actual. Sin embargo, las condiciones pueden " +
			"cambiar rápidamente. Mantente informado a través de canales oficiales."
	}

	highRisk := 0
	for _, z := range zones {
		if z.RiskLevel == "high" {
			highRisk++
		}
	}

	if highRisk > 0 {
		return fmt.Sprintf("⚠️ ATENCIÓN: Detecté %d zona(s) de ALTO RIESGO en tu área. Te recomiendo evitar estas zonas "+
			"y considerar refugios alternativos. ¿Necesitas que te ayude a encontrar una ruta segura?", highRisk)
	}
	return fmt.Sprintf("Tu zona presenta riesgo moderado. Mantente alerta a las condiciones meteorológicas y ten un plan "+
		"de evacuación preparado. Hay %d zona(s) de riesgo identificadas en el área.", len(zones))
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
