package emergencyapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/hydroassist/go-hydro-chatbot/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	cli := NewClient(srv.URL, 5*time.Second)
	t.Cleanup(func() {
		cli.client.CloseIdleConnections()
		srv.Close()
	})
	return cli
}

func TestRiskAssessment_OK(t *testing.T) {
	var gotPath, gotLat, gotLon string
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLat = r.URL.Query().Get("lat")
		gotLon = r.URL.Query().Get("lon")
		json.NewEncoder(w).Encode(map[string]any{
			"risk_assessment": map[string]any{
				"level":                "high",
				"description":          "Zona anegada",
				"recent_reports_count": 4,
			},
		})
	})

	risk, err := cli.RiskAssessment(context.Background(), models.Coordinate{Lat: -34.9205, Lon: -57.9536})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/geo/risk/" {
		t.Errorf("path = %s", gotPath)
	}
	if gotLat != "-34.9205" || gotLon != "-57.9536" {
		t.Errorf("query = (%s, %s)", gotLat, gotLon)
	}
	if risk.Level != "high" || risk.Description != "Zona anegada" || risk.RecentReportsCount != 4 {
		t.Errorf("unexpected risk: %+v", risk)
	}
}

func TestRiskAssessment_MissingFieldsGetPlaceholders(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	risk, err := cli.RiskAssessment(context.Background(), models.Coordinate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk.Level != "desconocido" {
		t.Errorf("level = %q, want desconocido", risk.Level)
	}
	if risk.Description != "No se pudo evaluar el riesgo" {
		t.Errorf("description = %q", risk.Description)
	}
}

func TestRiskAssessment_UpstreamError(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := cli.RiskAssessment(context.Background(), models.Coordinate{})
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if svcErr.Transport {
		t.Error("non-2xx status must not be a transport failure")
	}
	if svcErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", svcErr.Status)
	}
}

func TestRiskAssessment_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cli := NewClient(srv.URL, time.Second)
	srv.Close() // connection refused from here on

	_, err := cli.RiskAssessment(context.Background(), models.Coordinate{})
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if !svcErr.Transport {
		t.Error("connection failure must be flagged as transport")
	}
}

func TestNearbyShelters_PicksShelterGroup(t *testing.T) {
	var gotQuery map[string]string
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"type":   r.URL.Query().Get("type"),
			"radius": r.URL.Query().Get("radius"),
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []any{
				map[string]any{"type": "hospitals", "count": 2},
				map[string]any{
					"type":  "shelters",
					"count": 5,
					"data": []any{
						map[string]any{"name": "Centro Norte", "capacity": 50, "is_available": true},
					},
				},
			},
		})
	})

	lookup, err := cli.NearbyShelters(context.Background(), models.Coordinate{Lat: -34.9, Lon: -57.9}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery["type"] != "shelter" || gotQuery["radius"] != "5" {
		t.Errorf("query = %v", gotQuery)
	}
	if lookup.Count != 5 {
		t.Errorf("count = %d, want 5", lookup.Count)
	}
	if len(lookup.Shelters) != 1 || lookup.Shelters[0].Name != "Centro Norte" {
		t.Errorf("shelters = %+v", lookup.Shelters)
	}
}

func TestNearbyShelters_NoShelterGroup(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	})

	lookup, err := cli.NearbyShelters(context.Background(), models.Coordinate{}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lookup.Count != 0 || len(lookup.Shelters) != 0 {
		t.Errorf("expected empty lookup, got %+v", lookup)
	}
}

func TestSubmitReport_Created(t *testing.T) {
	var gotReport models.EmergencyReport
	var gotContentType string
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotReport)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 123}`))
	})

	report := &models.EmergencyReport{
		EventType:   models.EventTypeFlood,
		Severity:    "medium",
		Latitude:    -34.9205,
		Longitude:   -57.9536,
		Description: "hay una inundación",
	}
	id, err := cli.SubmitReport(context.Background(), report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != "123" {
		t.Errorf("receipt id = %q, want 123", id)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotReport.EventType != models.EventTypeFlood || gotReport.Severity != "medium" {
		t.Errorf("report payload = %+v", gotReport)
	}
}

func TestSubmitReport_StringID(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "rep-42"}`))
	})

	id, err := cli.SubmitReport(context.Background(), &models.EmergencyReport{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "rep-42" {
		t.Errorf("receipt id = %q", id)
	}
}

func TestSubmitReport_MissingID(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	})

	id, err := cli.SubmitReport(context.Background(), &models.EmergencyReport{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "" {
		t.Errorf("receipt id = %q, want empty", id)
	}
}

func TestSubmitReport_NonCreatedStatus(t *testing.T) {
	// 200 is not success for the report endpoint; only 201 counts.
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1}`))
	})

	_, err := cli.SubmitReport(context.Background(), &models.EmergencyReport{})
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if svcErr.Status != http.StatusOK {
		t.Errorf("status = %d", svcErr.Status)
	}
}
