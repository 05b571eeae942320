// Package render produces every user-facing message. One path formats
// emergency API payloads, the other templates replies from caller-supplied
// chat context. Rendering is pure: the same inputs always produce the same
// text.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hydroassist/go-hydro-chatbot/internal/emergencyapi"
	"github.com/hydroassist/go-hydro-chatbot/internal/models"
)

// maxSheltersShown caps the shelter list in a single reply.
const maxSheltersShown = 3

// RiskMessages formats a risk assessment. When the level is high or critical
// a second message offering a shelter search is appended.
func RiskMessages(risk *models.RiskAssessment) []string {
	var b strings.Builder
	b.WriteString("📍 Evaluación de riesgo para tu ubicación:\n\n")
	fmt.Fprintf(&b, "🚨 Nivel: %s\n", strings.ToUpper(risk.Level))
	fmt.Fprintf(&b, "📝 %s\n", risk.Description)

	if risk.RecentReportsCount > 0 {
		fmt.Fprintf(&b, "\n⚠️ Hay %d reportes recientes en el área", risk.RecentReportsCount)
	}

	msgs := []string{b.String()}
	if risk.Level == "high" || risk.Level == "critical" {
		msgs = append(msgs, "Dado el nivel de riesgo elevado, ¿te gustaría que busque refugios cercanos?")
	}
	return msgs
}

// ShelterListMessage formats a nearby-shelter lookup, showing at most three
// entries with an availability badge and optional phone/distance lines.
func ShelterListMessage(lookup *models.ShelterLookup) string {
	if lookup == nil || lookup.Count == 0 || len(lookup.Shelters) == 0 {
		return "No encontré refugios disponibles en un radio de 5km. Te recomiendo contactar a los servicios de emergencia: 911"
	}

	shelters := lookup.Shelters
	if len(shelters) > maxSheltersShown {
		shelters = shelters[:maxSheltersShown]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏠 Encontré %d refugios cercanos:\n\n", lookup.Count)

	for i, s := range shelters {
		name := s.Name
		if name == "" {
			name = "Refugio"
		}
		address := s.Address
		if address == "" {
			address = "Dirección no disponible"
		}
		status := "🔴 Lleno"
		if s.IsAvailable {
			status = "🟢 Disponible"
		}

		fmt.Fprintf(&b, "%d. **%s**\n", i+1, name)
		fmt.Fprintf(&b, "   📍 %s\n", address)
		fmt.Fprintf(&b, "   👥 Capacidad: %d personas\n", s.Capacity)
		fmt.Fprintf(&b, "   📊 %s (%.0f%% disponible)\n", status, s.AvailabilityPercentage)

		if s.ContactPhone != "" {
			fmt.Fprintf(&b, "   📞 %s\n", s.ContactPhone)
		}
		if s.Distance != 0 {
			fmt.Fprintf(&b, "   📏 %.1f km de distancia\n", s.Distance)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// ReportMessages formats a registered report: the receipt block followed by
// the follow-up offer. An empty receipt id is shown as "N/A".
func ReportMessages(receiptID string) []string {
	if receiptID == "" {
		receiptID = "N/A"
	}

	var b strings.Builder
	b.WriteString("✅ Tu reporte de emergencia ha sido registrado exitosamente.\n\n")
	fmt.Fprintf(&b, "📋 ID del reporte: %s\n", receiptID)
	b.WriteString("🚨 Las autoridades competentes han sido notificadas.\n\n")
	b.WriteString("Si es una emergencia inmediata que requiere atención médica o de bomberos, llama al 911.")

	return []string{
		b.String(),
		"¿Necesitas información sobre refugios cercanos o evaluación de riesgo en tu zona?",
	}
}

// FallbackMessage lists what the assistant can do when no intent matched.
func FallbackMessage() string {
	return "Lo siento, no entendí tu mensaje. Puedo ayudarte con:\n\n" +
		"🔍 Consultar riesgo de inundación en tu zona\n" +
		"🏠 Buscar refugios cercanos\n" +
		"📢 Reportar emergencias hídricas\n\n" +
		"¿En qué te puedo ayudar?"
}

// FailureTexts holds the degraded-mode replies for one action. Emergency
// related texts always quote the 911 hotline so the user keeps an offline
// channel when the system degrades.
type FailureTexts struct {
	Upstream   string
	Transport  string
	Unexpected string
}

var (
	RiskFailures = FailureTexts{
		Upstream:   "Lo siento, no pude acceder a la información de riesgo en este momento. Intenta más tarde.",
		Transport:  "No pude conectarme al servidor. Por favor, verifica tu conexión e intenta nuevamente.",
		Unexpected: "Ocurrió un error inesperado. Por favor, intenta nuevamente.",
	}
	ShelterFailures = FailureTexts{
		Upstream:   "No pude acceder a la información de refugios. Contacta a emergencias: 911",
		Transport:  "No pude conectarme al servidor. En caso de emergencia, llama al 911.",
		Unexpected: "Ocurrió un error. En caso de emergencia inmediata, llama al 911.",
	}
	ReportFailures = FailureTexts{
		Upstream:   "Hubo un problema al procesar tu reporte. Por favor, contacta directamente a los servicios de emergencia: 911",
		Transport:  "No pude enviar el reporte debido a problemas de conexión. Para emergencias inmediatas, llama al 911.",
		Unexpected: "Ocurrió un error procesando el reporte. Si es una emergencia, llama inmediatamente al 911.",
	}
)

// DegradedMessage picks the canned reply matching the failure kind.
func DegradedMessage(texts FailureTexts, err error) string {
	var svcErr *emergencyapi.ServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Transport {
			return texts.Transport
		}
		return texts.Upstream
	}
	return texts.Unexpected
}
