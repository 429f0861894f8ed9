package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/tweet-weather/internal/weather"
)

var errNoHTTPClient = errors.New("http client not configured")

// doRequest executes a single GET and classifies the response status.
// On success the caller owns the response body.
func doRequest(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		// url.Error repeats the full URL, appid included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("request weather: %w", err)
	}

	if err := classifyStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// classifyStatus maps a provider HTTP status onto the weather error taxonomy.
func classifyStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return weather.AuthenticationError{}
	case code == http.StatusNotFound:
		return weather.NotFoundError{}
	default:
		return weather.UpstreamError{StatusCode: code}
	}
}
