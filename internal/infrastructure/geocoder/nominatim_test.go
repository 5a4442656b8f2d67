package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetside/internal/shared/config"
	"streetside/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)        {}
func (nopLogger) Info(msg string, args ...any)         {}
func (nopLogger) Warn(msg string, args ...any)         {}
func (nopLogger) Error(msg string, args ...any)        {}
func (l nopLogger) With(args ...any) logger.Interface  { return l }
func (l nopLogger) Named(name string) logger.Interface { return l }
func (nopLogger) Debugw(msg string, kv ...interface{}) {}
func (nopLogger) Infow(msg string, kv ...interface{})  {}
func (nopLogger) Warnw(msg string, kv ...interface{})  {}
func (nopLogger) Errorw(msg string, kv ...interface{}) {}

func newTestGeocoder(baseURL string, timeoutMS int) *NominatimGeocoder {
	return NewNominatimGeocoder(&config.GeocoderConfig{
		BaseURL:   baseURL,
		TimeoutMS: timeoutMS,
		UserAgent: "streetside-test/1.0",
	}, nopLogger{})
}

func TestNominatimGeocoderResolvesAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "streetside-test/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"display_name": "123 Market St, San Francisco"}`))
	}))
	defer server.Close()

	g := newTestGeocoder(server.URL, 1000)

	address, err := g.ReverseGeocode(context.Background(), 37.79, -122.39)
	require.NoError(t, err)
	assert.Equal(t, "123 Market St, San Francisco", address)
}

func TestNominatimGeocoderTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"display_name": "too late"}`))
	}))
	defer server.Close()

	g := newTestGeocoder(server.URL, 20)

	_, err := g.ReverseGeocode(context.Background(), 37.79, -122.39)
	require.Error(t, err)
}

func TestNominatimGeocoderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer server.Close()

	g := newTestGeocoder(server.URL, 1000)

	_, err := g.ReverseGeocode(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to geocode")
}

func TestNominatimGeocoderNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	g := newTestGeocoder(server.URL, 1000)

	_, err := g.ReverseGeocode(context.Background(), 37.79, -122.39)
	require.Error(t, err)
}
