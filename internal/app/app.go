package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/tweet-weather/internal/api/http"
	"github.com/i474232898/tweet-weather/internal/config"
	"github.com/i474232898/tweet-weather/internal/scheduler"
	"github.com/i474232898/tweet-weather/internal/social"
	"github.com/i474232898/tweet-weather/internal/weather"
	"github.com/i474232898/tweet-weather/internal/weather/providers"
)

const AppName = "tweet-weather"

// NewPublisher wires the weather provider and the poster selected by cfg.
// Dry-run output goes to out.
func NewPublisher(cfg *config.AppConfig, httpClient *http.Client, out io.Writer, log *slog.Logger) *weather.Publisher {
	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey,
		providers.WithBaseURL(cfg.WeatherBaseURL),
		providers.WithLanguage(cfg.Language),
	)

	var poster weather.Poster
	if cfg.DryRun {
		poster = social.NewDryRunPoster(out)
	} else {
		poster = social.NewTwitterPoster(httpClient, cfg.Twitter, cfg.TwitterBaseURL)
	}

	return weather.NewPublisher(provider, poster, cfg.Units, log)
}

// RunOnce performs a single invocation for the configured cities.
func RunOnce(ctx context.Context, publisher *weather.Publisher, cfg *config.AppConfig) (weather.Result, error) {
	return publisher.PublishDailyWeather(ctx, cfg.Cities)
}

// NewServer builds the Fiber app exposing the trigger and preview endpoints.
func NewServer(publisher *weather.Publisher, cfg *config.AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               AppName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": AppName,
		})
	})

	httpapi.RegisterRoutes(app, publisher, cfg.Cities, cfg.Units)
	return app
}

// Serve runs the HTTP trigger and the publish schedule until ctx is done.
func Serve(ctx context.Context, publisher *weather.Publisher, cfg *config.AppConfig, log *slog.Logger) error {
	sched := scheduler.New(cfg.Cities, cfg.PublishCron, publisher, log)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := NewServer(publisher, cfg)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http listening", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("http shutting down")
	return app.ShutdownWithContext(shutdownCtx)
}
