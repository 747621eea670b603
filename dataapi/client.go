// Package dataapi fetches readings from the sensor data API.
package dataapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/lologarithm/cydonia/reading"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("data api returned %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("data api returned %s", e.Status)
}

// Client talks to one data API base URL.
type Client struct {
	base *url.URL
	hc   *http.Client
}

// NewClient validates baseURL. A nil hc uses http.DefaultClient.
func NewClient(baseURL string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid data url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid data url %q: scheme must be http or https", baseURL)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: u, hc: hc}, nil
}

// URL is the request URL for a location; an empty location asks for everything.
func (c *Client) URL(location reading.ID) string {
	u := *c.base
	u.Path += "/data"
	if location != "" {
		u.RawQuery = url.Values{"location_id": {string(location)}}.Encode()
	}
	return u.String()
}

// Fetch downloads the current readings for a location.
func (c *Client) Fetch(ctx context.Context, location reading.ID) ([]reading.Reading, error) {
	reqID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(location), nil)
	if err != nil {
		return nil, fmt.Errorf("building data request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching data for location %q: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	var readings []reading.Reading
	if err := json.NewDecoder(resp.Body).Decode(&readings); err != nil {
		return nil, fmt.Errorf("decoding data for location %q: %w", location, err)
	}
	log.Printf("Data fetched for location %q (%s): %d readings", location, reqID, len(readings))
	return readings, nil
}
