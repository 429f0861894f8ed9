package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/i474232898/tweet-weather/internal/weather"
)

// setEnv starts from a clean environment in an empty working directory,
// then applies overrides.
func setEnv(t *testing.T, overrides map[string]string) {
	t.Helper()
	chdir(t, t.TempDir())
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "RUN_MODE", "WEATHER_CITIES", "WEATHER_UNITS",
		"WEATHER_LANG", "WEATHER_BASE_URL", "TWITTER_BASE_URL", "PUBLISH_CRON",
		"PORT", "DRY_RUN", "OPENWEATHER_API_KEY",
		"TWITTER_CONSUMER_KEY", "TWITTER_CONSUMER_SECRET",
		"TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_TOKEN_SECRET",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("SECRETS_FILE", filepath.Join(t.TempDir(), "missing.ini"))
	for k, v := range overrides {
		t.Setenv(k, v)
	}
}

func weatherStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"name":%q,"weather":[{"id":800,"description":"cielo claro"}],"main":{"temp":15}}`,
			r.URL.Query().Get("q"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func errorLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, "Error: ") {
			n++
		}
	}
	return n
}

func TestRun_MissingCredential(t *testing.T) {
	setEnv(t, nil)

	err := run(&bytes.Buffer{}, &bytes.Buffer{})
	var missing weather.CredentialMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("run() error = %v, want CredentialMissingError", err)
	}
	if missing.Section != "openweather" || missing.Key != "api_key" {
		t.Errorf("missing = %+v", missing)
	}
}

func TestExecute_FailureReportsOnce(t *testing.T) {
	setEnv(t, nil)

	var stdout, stderr bytes.Buffer
	if code := execute(&stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if strings.Count(stderr.String(), "\n") != 1 || !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q, want exactly one Error line", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", stdout.String())
	}
}

func TestExecute_UpstreamFailureReportsOnce(t *testing.T) {
	srv := weatherStub(t)
	setEnv(t, map[string]string{
		"APP_ENV":             "prod",
		"WEATHER_BASE_URL":    srv.URL,
		"WEATHER_CITIES":      "Lima,Quito",
		"OPENWEATHER_API_KEY": "wrong",
		"DRY_RUN":             "true",
	})

	var stdout, stderr bytes.Buffer
	if code := execute(&stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if n := errorLines(stderr.String()); n != 1 {
		t.Errorf("stderr has %d Error lines, want 1: %q", n, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing posted", stdout.String())
	}
}

func TestExecute_DryRunSucceeds(t *testing.T) {
	srv := weatherStub(t)
	setEnv(t, map[string]string{
		"APP_ENV":             "prod",
		"WEATHER_BASE_URL":    srv.URL,
		"WEATHER_CITIES":      "Lima,Quito",
		"OPENWEATHER_API_KEY": "k",
		"DRY_RUN":             "true",
	})

	var stdout, stderr bytes.Buffer
	if code := execute(&stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr %q)", code, stderr.String())
	}
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("stdout has %d lines, want 2: %q", len(lines), stdout.String())
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "(15°C)") {
			t.Errorf("line = %q, want (15°C) suffix", line)
		}
	}
	if errorLines(stderr.String()) != 0 {
		t.Errorf("stderr = %q, want no Error line", stderr.String())
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}
