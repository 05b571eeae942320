package emergencyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hydroassist/go-hydro-chatbot/internal/models"
)

// Gateway is the outbound surface the action handlers depend on.
type Gateway interface {
	RiskAssessment(ctx context.Context, c models.Coordinate) (*models.RiskAssessment, error)
	NearbyShelters(ctx context.Context, c models.Coordinate, radiusKm int) (*models.ShelterLookup, error)
	SubmitReport(ctx context.Context, r *models.EmergencyReport) (string, error)
}

// ServiceError is the uniform failure signal for outbound calls. Transport
// marks connection-level failures (refused, timed out, DNS); otherwise the
// upstream answered with an unexpected status. A single failed attempt is
// terminal, there are no retries.
type ServiceError struct {
	Transport bool
	Status    int
	Err       error
}

func (e *ServiceError) Error() string {
	if e.Transport {
		return fmt.Sprintf("emergency API unreachable: %v", e.Err)
	}
	return fmt.Sprintf("emergency API returned status %d", e.Status)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Client calls the external geo/emergency REST API. Every call is
// synchronous and bounded by the configured timeout.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ Gateway = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type riskResponse struct {
	RiskAssessment models.RiskAssessment `json:"risk_assessment"`
}

// RiskAssessment fetches the risk evaluation for a coordinate. Missing level
// or description fields are filled with the unknown-risk placeholders.
func (c *Client) RiskAssessment(ctx context.Context, coord models.Coordinate) (*models.RiskAssessment, error) {
	q := url.Values{}
	q.Set("lat", formatFloat(coord.Lat))
	q.Set("lon", formatFloat(coord.Lon))

	var data riskResponse
	if err := c.getJSON(ctx, "/geo/risk/", q, &data); err != nil {
		return nil, err
	}

	risk := data.RiskAssessment
	if risk.Level == "" {
		risk.Level = "desconocido"
	}
	if risk.Description == "" {
		risk.Description = "No se pudo evaluar el riesgo"
	}
	return &risk, nil
}

type nearbyResponse struct {
	Results []nearbyResult `json:"results"`
}

type nearbyResult struct {
	Type  string           `json:"type"`
	Count int              `json:"count"`
	Data  []models.Shelter `json:"data"`
}

// NearbyShelters queries shelters around a coordinate. The API groups
// results by type; only the first "shelters" group is consumed.
func (c *Client) NearbyShelters(ctx context.Context, coord models.Coordinate, radiusKm int) (*models.ShelterLookup, error) {
	q := url.Values{}
	q.Set("lat", formatFloat(coord.Lat))
	q.Set("lon", formatFloat(coord.Lon))
	q.Set("type", "shelter")
	q.Set("radius", strconv.Itoa(radiusKm))

	var data nearbyResponse
	if err := c.getJSON(ctx, "/geo/nearby/", q, &data); err != nil {
		return nil, err
	}

	for _, result := range data.Results {
		if result.Type == "shelters" {
			return &models.ShelterLookup{Count: result.Count, Shelters: result.Data}, nil
		}
	}
	return &models.ShelterLookup{}, nil
}

// SubmitReport sends an emergency report and returns the opaque receipt
// identifier echoed by the API, or "" when the payload carries none.
func (c *Client) SubmitReport(ctx context.Context, report *models.EmergencyReport) (string, error) {
	body, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("error encoding report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/report/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &ServiceError{Transport: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", &ServiceError{Status: resp.StatusCode}
	}

	var payload struct {
		ID any `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("error decoding resp.Body: %w", err)
	}
	return formatReceiptID(payload.ID), nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &ServiceError{Transport: true, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ServiceError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding resp.Body: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatReceiptID renders whatever JSON value the API used as the report id.
func formatReceiptID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", id)
	}
}
