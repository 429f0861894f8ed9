package weather

import "context"

// Provider abstracts a current-weather data source (e.g. OpenWeatherMap).
// Building the URL and fetching it are separate steps so that query
// construction stays free of I/O.
type Provider interface {
	Name() string
	BuildQuery(city string, units UnitSystem) (string, error)
	Fetch(ctx context.Context, queryURL string) (Observation, error)
}

// Poster submits a status update and returns the id assigned by the provider.
type Poster interface {
	Post(ctx context.Context, message string) (string, error)
}
