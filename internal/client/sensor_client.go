package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"waste-service/internal/config"
)

// SensorReading is one fill-level report from the sensor platform.
type SensorReading struct {
	SensorID   string    `json:"sensor_id"`
	FillLevel  float64   `json:"fill_level"`
	ReportedAt time.Time `json:"reported_at"`
}

type sensorReadingsResponse struct {
	Data []SensorReading `json:"data"`
}

// SensorClient talks to the external bin-sensor platform that aggregates
// fill-level telemetry.
type SensorClient struct {
	baseURL       string
	internalToken string
	httpClient    *http.Client
}

func NewSensorClient(cfg *config.Config) *SensorClient {
	return &SensorClient{
		baseURL:       cfg.ExternalServices.SensorServiceURL,
		internalToken: cfg.ExternalServices.SensorServiceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LatestReadings fetches the most recent fill level for each requested
// sensor. Sensors the platform does not know are simply absent from the
// response.
func (c *SensorClient) LatestReadings(ctx context.Context, sensorIDs []string) ([]SensorReading, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("sensor service URL is not configured")
	}
	if len(sensorIDs) == 0 {
		return nil, nil
	}

	u, err := url.Parse(c.baseURL + "/internal/sensors/readings")
	if err != nil {
		return nil, fmt.Errorf("invalid sensor service URL: %w", err)
	}

	q := u.Query()
	q.Set("sensor_ids", strings.Join(sensorIDs, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.internalToken != "" {
		req.Header.Set("X-Internal-Token", c.internalToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sensor service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("sensor service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed sensorReadingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode sensor readings: %w", err)
	}

	return parsed.Data, nil
}
