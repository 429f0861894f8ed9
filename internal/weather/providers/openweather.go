package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/tweet-weather/internal/weather"
)

// DefaultOpenWeatherURL is the current-weather-by-city endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

var (
	errEmptyCity      = errors.New("city name is empty")
	errNoWeatherEntry = errors.New("response has no weather entries")
	errNoMainSection  = errors.New("response has no main.temp reading")
	errTrailingData   = errors.New("response has data after the JSON object")
)

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name     string
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

// OpenWeatherOption customizes an OpenWeatherProvider.
type OpenWeatherOption func(*OpenWeatherProvider)

// WithBaseURL points the provider at another endpoint (tests, proxies).
func WithBaseURL(u string) OpenWeatherOption {
	return func(p *OpenWeatherProvider) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// WithLanguage sets the response language; the default is "es".
func WithLanguage(lang string) OpenWeatherOption {
	return func(p *OpenWeatherProvider) {
		if lang != "" {
			p.language = lang
		}
	}
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...OpenWeatherOption) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:     "openweathermap",
		apiKey:   apiKey,
		baseURL:  DefaultOpenWeatherURL,
		language: "es",
		client:   client,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// BuildQuery returns the request URL for city in the given unit system.
// It performs no I/O.
func (p *OpenWeatherProvider) BuildQuery(city string, units weather.UnitSystem) (string, error) {
	if p.apiKey == "" {
		return "", weather.CredentialMissingError{Section: "openweather", Key: "api_key"}
	}
	if strings.TrimSpace(city) == "" {
		return "", errEmptyCity
	}
	if units != weather.Imperial {
		units = weather.Metric
	}

	return p.queryURL(weather.Query{City: city, Units: units, Language: p.language}), nil
}

func (p *OpenWeatherProvider) queryURL(q weather.Query) string {
	values := url.Values{}
	values.Set("q", q.City)
	values.Set("units", string(q.Units))
	values.Set("appid", p.apiKey)
	values.Set("lang", q.Language)

	// Encode writes spaces as '+'; a literal '+' is already %2B, so this is lossless.
	encoded := strings.ReplaceAll(values.Encode(), "+", "%20")
	return fmt.Sprintf("%s?%s", p.baseURL, encoded)
}

type openWeatherPayload struct {
	Name    string `json:"name"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp json.Number `json:"temp"`
	} `json:"main"`
}

// Fetch issues one GET against queryURL and decodes the current weather.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, queryURL string) (weather.Observation, error) {
	resp, err := doRequest(ctx, p.client, queryURL)
	if err != nil {
		return weather.Observation{}, err
	}
	defer resp.Body.Close()

	var payload openWeatherPayload
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&payload); err != nil {
		return weather.Observation{}, weather.DecodeError{Err: err}
	}
	// The body must be exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return weather.Observation{}, weather.DecodeError{Err: errTrailingData}
	}
	if len(payload.Weather) == 0 {
		return weather.Observation{}, weather.DecodeError{Err: errNoWeatherEntry}
	}
	if payload.Main == nil || payload.Main.Temp == "" {
		return weather.Observation{}, weather.DecodeError{Err: errNoMainSection}
	}

	return weather.Observation{
		CityName:    payload.Name,
		Code:        payload.Weather[0].ID,
		Description: payload.Weather[0].Description,
		Temperature: payload.Main.Temp,
	}, nil
}
