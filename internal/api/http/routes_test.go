package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/tweet-weather/internal/social"
	"github.com/i474232898/tweet-weather/internal/weather"
	"github.com/i474232898/tweet-weather/internal/weather/providers"
)

type countingPoster struct {
	calls int
}

func (p *countingPoster) Post(_ context.Context, message string) (string, error) {
	p.calls++
	return "42", nil
}

// newTestApp serves OpenWeather-shaped replies: 404 for "Atlantis", 401 for
// "Locked", a clear sky otherwise.
func newTestApp(t *testing.T, cities []string) (*fiber.App, *countingPoster) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("q")
		switch city {
		case "Atlantis":
			w.WriteHeader(http.StatusNotFound)
		case "Locked":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			fmt.Fprintf(w, `{"name":%q,"weather":[{"id":800,"description":"clear sky"}],"main":{"temp":%s}}`,
				city, map[string]string{"metric": "20", "imperial": "68"}[r.URL.Query().Get("units")])
		}
	}))
	t.Cleanup(srv.Close)

	provider := providers.NewOpenWeatherProvider(srv.Client(), "fake-key", providers.WithBaseURL(srv.URL))
	poster := &countingPoster{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := weather.NewPublisher(provider, poster, weather.Metric, logger)

	app := fiber.New()
	RegisterRoutes(app, publisher, cities, weather.Metric)
	return app, poster
}

func TestPublish_Success(t *testing.T) {
	app, poster := newTestApp(t, []string{"Lima", "Quito"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/publish", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var res weather.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.StatusID != "42" || len(res.Lines) != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
	if poster.calls != 1 {
		t.Errorf("poster calls = %d, want 1", poster.calls)
	}
}

func TestPublish_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		cities []string
		want   int
	}{
		{name: "unknown city", cities: []string{"Lima", "Atlantis"}, want: http.StatusNotFound},
		{name: "bad api key", cities: []string{"Locked"}, want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, poster := newTestApp(t, tt.cities)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/publish", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, resp.StatusCode)
			}
			if poster.calls != 0 {
				t.Errorf("poster calls = %d, want 0", poster.calls)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	app, poster := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/preview?city=Test%20City&units=imperial", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Line string `json:"line"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body.Line, "Test City") || !strings.HasSuffix(body.Line, "(68°F)") {
		t.Errorf("line = %q", body.Line)
	}
	if poster.calls != 0 {
		t.Errorf("preview posted %d times, want 0", poster.calls)
	}
}

// TestPreviewValidation verifies that the preview endpoint rejects a missing
// city and unsupported unit systems.
func TestPreviewValidation(t *testing.T) {
	app, _ := newTestApp(t, nil)

	for _, target := range []string{
		"/api/v1/weather/preview",
		"/api/v1/weather/preview?city=Paris&units=kelvin",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("fetch: %w", weather.NotFoundError{}), http.StatusNotFound},
		{weather.AuthenticationError{}, http.StatusBadGateway},
		{weather.UpstreamError{StatusCode: 500}, http.StatusBadGateway},
		{weather.DecodeError{Err: errors.New("x")}, http.StatusBadGateway},
		{fmt.Errorf("post: %w", social.PostError{StatusCode: 403}), http.StatusBadGateway},
		{weather.CredentialMissingError{Section: "openweather", Key: "api_key"}, http.StatusInternalServerError},
		{weather.ErrNoCities, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
