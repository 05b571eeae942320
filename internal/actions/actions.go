// Package actions implements the API-backed front door: handlers that
// resolve a location themselves, call the external emergency API and format
// its payload. Intents are implicit in which action is invoked.
package actions

import (
	"context"
	"log/slog"

	"github.com/hydroassist/go-hydro-chatbot/internal/emergencyapi"
	"github.com/hydroassist/go-hydro-chatbot/internal/models"
	"github.com/hydroassist/go-hydro-chatbot/internal/nlu"
	"github.com/hydroassist/go-hydro-chatbot/internal/render"
)

// Action names as registered with the upstream conversational runtime.
const (
	NameConsultRisk     = "action_consultar_riesgo"
	NameFindShelter     = "action_buscar_refugio"
	NameReportEmergency = "action_reportar_emergencia"
	NameDefaultFallback = "action_default_fallback"
)

const shelterSearchRadiusKm = 5

// Message is one inbound message as seen by an action: raw text plus the
// entities an upstream NLU step attached.
type Message struct {
	Text     string
	Entities []models.Entity
}

// Actions hosts the API-backed handlers. Each returns the ordered list of
// messages to utter; outbound failures become canned degraded-mode replies,
// never errors.
type Actions struct {
	gateway   emergencyapi.Gateway
	extractor *nlu.Extractor
}

func New(gateway emergencyapi.Gateway, extractor *nlu.Extractor) *Actions {
	return &Actions{
		gateway:   gateway,
		extractor: extractor,
	}
}

// Run dispatches an action by name. Unknown names run the fallback.
func (a *Actions) Run(ctx context.Context, name string, msg Message) []string {
	switch name {
	case NameConsultRisk:
		return a.ConsultRisk(ctx, msg)
	case NameFindShelter:
		return a.FindShelter(ctx, msg)
	case NameReportEmergency:
		return a.ReportEmergency(ctx, msg)
	default:
		return a.DefaultFallback(ctx, msg)
	}
}

func (a *Actions) ConsultRisk(ctx context.Context, msg Message) []string {
	loc := a.extractor.Extract(msg.Entities, msg.Text)
	coord := a.extractor.Resolve(loc)

	risk, err := a.gateway.RiskAssessment(ctx, coord)
	if err != nil {
		slog.Warn("risk lookup failed", "lat", coord.Lat, "lon", coord.Lon, "error", err)
		return []string{render.DegradedMessage(render.RiskFailures, err)}
	}
	return render.RiskMessages(risk)
}

func (a *Actions) FindShelter(ctx context.Context, msg Message) []string {
	loc := a.extractor.Extract(msg.Entities, msg.Text)
	coord := a.extractor.Resolve(loc)

	lookup, err := a.gateway.NearbyShelters(ctx, coord, shelterSearchRadiusKm)
	if err != nil {
		slog.Warn("shelter lookup failed", "lat", coord.Lat, "lon", coord.Lon, "error", err)
		return []string{render.DegradedMessage(render.ShelterFailures, err)}
	}
	return []string{render.ShelterListMessage(lookup)}
}

func (a *Actions) ReportEmergency(ctx context.Context, msg Message) []string {
	loc := a.extractor.Extract(msg.Entities, msg.Text)
	coord := a.extractor.Resolve(loc)

	report := &models.EmergencyReport{
		EventType:   nlu.DetectEventType(msg.Entities, msg.Text),
		Severity:    "medium", // the flow does not grade severity yet
		Latitude:    coord.Lat,
		Longitude:   coord.Lon,
		Address:     loc.Address,
		Description: msg.Text,
	}

	receiptID, err := a.gateway.SubmitReport(ctx, report)
	if err != nil {
		slog.Warn("report submission failed", "event_type", report.EventType, "error", err)
		return []string{render.DegradedMessage(render.ReportFailures, err)}
	}

	slog.Info("emergency report registered", "event_type", report.EventType, "receipt_id", receiptID)
	return render.ReportMessages(receiptID)
}

func (a *Actions) DefaultFallback(ctx context.Context, msg Message) []string {
	return []string{render.FallbackMessage()}
}
