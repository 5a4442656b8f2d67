// Package geocoder provides a reverse-geocoding adapter backed by a
// nominatim-compatible HTTP API.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"streetside/internal/shared/config"
	"streetside/internal/shared/logger"
)

const (
	defaultTimeout = 2 * time.Second
	// Maximum response body size for the geocoding API (64KB)
	maxResponseSize = 64 << 10
)

// nominatimResponse represents the reverse geocoding API response
type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// NominatimGeocoder resolves coordinates against a nominatim-style endpoint.
// Lookups are bounded by the configured timeout; callers treat every error
// as a degraded, address-less result.
type NominatimGeocoder struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     logger.Interface
}

// NewNominatimGeocoder creates a new reverse geocoder from config
func NewNominatimGeocoder(cfg *config.GeocoderConfig, logger logger.Interface) *NominatimGeocoder {
	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}

	return &NominatimGeocoder{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ReverseGeocode resolves coordinates into a display address.
func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		g.baseURL,
		url.QueryEscape(fmt.Sprintf("%f", latitude)),
		url.QueryEscape(fmt.Sprintf("%f", longitude)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build geocoding request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read geocoding response: %w", err)
	}

	var result nominatimResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("geocoding API error: %s", result.Error)
	}

	return result.DisplayName, nil
}
