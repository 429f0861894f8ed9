package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Result describes a successful publish.
type Result struct {
	InvocationID string   `json:"invocation"`
	StatusID     string   `json:"statusId"`
	Lines        []string `json:"lines"`
	Message      string   `json:"message"`
}

// Publisher fetches weather for a list of cities and posts the combined summary.
type Publisher struct {
	provider Provider
	poster   Poster
	units    UnitSystem
	logger   *slog.Logger
}

// NewPublisher creates a new Publisher. A nil logger falls back to slog.Default.
func NewPublisher(provider Provider, poster Poster, units UnitSystem, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		provider: provider,
		poster:   poster,
		units:    units,
		logger:   logger,
	}
}

// Line builds, fetches and formats the summary line for one city.
func (p *Publisher) Line(ctx context.Context, city string, units UnitSystem) (string, error) {
	queryURL, err := p.provider.BuildQuery(city, units)
	if err != nil {
		return "", fmt.Errorf("build query for %q: %w", city, err)
	}

	obs, err := p.provider.Fetch(ctx, queryURL)
	if err != nil {
		return "", fmt.Errorf("fetch weather for %q: %w", city, err)
	}

	return FormatLine(obs, units), nil
}

// PublishDailyWeather formats one line per city, in order, and posts them as a
// single status update. The first failing city aborts the whole batch and
// nothing is posted.
func (p *Publisher) PublishDailyWeather(ctx context.Context, cities []string) (Result, error) {
	if len(cities) == 0 {
		return Result{}, ErrNoCities
	}

	res := Result{InvocationID: uuid.NewString()}
	log := p.logger.With("invocation", res.InvocationID, "provider", p.provider.Name())
	log.Debug("publish started", "cities", len(cities), "units", string(p.units))

	res.Lines = make([]string, 0, len(cities))
	for _, city := range cities {
		line, err := p.Line(ctx, city, p.units)
		if err != nil {
			log.Error("publish aborted", "city", city, "err", err)
			return Result{}, err
		}
		log.Debug("city formatted", "city", city)
		res.Lines = append(res.Lines, line)
	}

	res.Message = strings.Join(res.Lines, "\n")

	id, err := p.poster.Post(ctx, res.Message)
	if err != nil {
		log.Error("post failed", "err", err)
		return Result{}, fmt.Errorf("post status update: %w", err)
	}
	res.StatusID = id

	log.Info("weather published", "status_id", id, "cities", len(cities))
	return res, nil
}
