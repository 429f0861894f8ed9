package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"

	"github.com/i474232898/tweet-weather/internal/social"
	"github.com/i474232898/tweet-weather/internal/weather"
	"github.com/i474232898/tweet-weather/internal/weather/providers"
)

const (
	RunModeOnce  = "once"
	RunModeServe = "serve"

	defaultSecretsFile = "secrets.ini"
	defaultCities      = "Mexico City,San Francisco,Saint Petersburg"
	defaultCron        = "0 13 * * *"
)

type AppConfig struct {
	AppEnv   string     `validate:"oneof=dev prod"`
	LogLevel slog.Level `validate:"-"`
	RunMode  string     `validate:"oneof=once serve"`

	// Cities are published in this order.
	Cities   []string           `validate:"min=1,dive,required"`
	Units    weather.UnitSystem `validate:"required"`
	Language string             `validate:"required"`

	WeatherBaseURL string `validate:"required,url"`
	TwitterBaseURL string `validate:"required,url"`

	OpenWeatherAPIKey string
	Twitter           social.Credentials

	// PublishCron is the schedule used in serve mode.
	PublishCron string `validate:"required"`
	Port        string `validate:"required,numeric"`

	// DryRun prints the status update instead of posting it.
	DryRun bool
}

var validate = validator.New()

// Load reads configuration from environment and the secrets file, with sensible defaults.
func Load() (*AppConfig, error) {
	loadDotEnv()
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level
	cfg.RunMode = getenvDefault("RUN_MODE", RunModeOnce)

	cfg.Cities = splitList(getenvDefault("WEATHER_CITIES", defaultCities))
	units, err := weather.ParseUnitSystem(getenvDefault("WEATHER_UNITS", string(weather.Metric)))
	if err != nil {
		return nil, err
	}
	cfg.Units = units
	cfg.Language = getenvDefault("WEATHER_LANG", "es")
	cfg.WeatherBaseURL = getenvDefault("WEATHER_BASE_URL", providers.DefaultOpenWeatherURL)
	cfg.TwitterBaseURL = getenvDefault("TWITTER_BASE_URL", social.DefaultTwitterURL)

	cfg.PublishCron = getenvDefault("PUBLISH_CRON", defaultCron)
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DryRun = getenvBool("DRY_RUN")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := loadSecrets(cfg, getenvDefault("SECRETS_FILE", defaultSecretsFile)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv imports ./.env when present. Having no .env is the normal case
// and stays silent; a file that exists but cannot be read is reported.
func loadDotEnv() {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}
	log.Printf("WARN: error loading .env file: %v", err)
}

// loadSecrets fills credentials from the INI file at path, then lets
// environment variables override individual keys. A missing file is not an
// error as long as the environment provides every required key.
func loadSecrets(cfg *AppConfig, path string) error {
	file := ini.Empty()
	if _, err := os.Stat(path); err == nil {
		f, err := ini.Load(path)
		if err != nil {
			return fmt.Errorf("read secrets file %s: %w", path, err)
		}
		file = f
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat secrets file %s: %w", path, err)
	}

	secrets := []struct {
		section, key, env string
		dst               *string
	}{
		{"openweather", "api_key", "OPENWEATHER_API_KEY", &cfg.OpenWeatherAPIKey},
		{"twitter", "consumer_key", "TWITTER_CONSUMER_KEY", &cfg.Twitter.ConsumerKey},
		{"twitter", "consumer_secret", "TWITTER_CONSUMER_SECRET", &cfg.Twitter.ConsumerSecret},
		{"twitter", "access_token", "TWITTER_ACCESS_TOKEN", &cfg.Twitter.AccessToken},
		{"twitter", "access_token_secret", "TWITTER_ACCESS_TOKEN_SECRET", &cfg.Twitter.AccessTokenSecret},
	}

	for _, s := range secrets {
		v := strings.TrimSpace(file.Section(s.section).Key(s.key).String())
		if env := strings.TrimSpace(os.Getenv(s.env)); env != "" {
			v = env
		}
		if v == "" {
			// The poster is replaced in dry-run mode, so its keys are optional.
			if s.section == "twitter" && cfg.DryRun {
				continue
			}
			return weather.CredentialMissingError{Section: s.section, Key: s.key}
		}
		*s.dst = v
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}
