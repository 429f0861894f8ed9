package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"
)

// DefaultTwitterURL is the API host used for creating posts.
const DefaultTwitterURL = "https://api.twitter.com"

var errEmptyMessage = errors.New("status message is empty")

// Credentials are the OAuth1 user-context keys of the posting account.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// PostError carries a non-2xx status from the posting provider.
type PostError struct {
	StatusCode int
	Detail     string
}

func (e PostError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("status update rejected (%d)", e.StatusCode)
	}
	return fmt.Sprintf("status update rejected (%d): %s", e.StatusCode, e.Detail)
}

// TwitterPoster posts status updates through the v2 create-post endpoint.
type TwitterPoster struct {
	baseURL string
	config  *oauth1.Config
	token   *oauth1.Token
	base    *http.Client
}

// NewTwitterPoster builds a poster that signs every request with creds.
// base is the transport used underneath the signer; nil means http.DefaultClient.
func NewTwitterPoster(base *http.Client, creds Credentials, baseURL string) *TwitterPoster {
	if baseURL == "" {
		baseURL = DefaultTwitterURL
	}
	return &TwitterPoster{
		baseURL: strings.TrimRight(baseURL, "/"),
		config:  oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret),
		token:   oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret),
		base:    base,
	}
}

type createPostRequest struct {
	Text string `json:"text"`
}

type createPostResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type apiErrorResponse struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Post submits message as one status update and returns its id.
func (t *TwitterPoster) Post(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errEmptyMessage
	}

	body, err := json.Marshal(createPostRequest{Text: message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client(ctx).Do(req)
	if err != nil {
		return "", fmt.Errorf("request status update: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read status update response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiErrorResponse
		_ = json.Unmarshal(raw, &apiErr)
		detail := apiErr.Detail
		if detail == "" {
			detail = apiErr.Title
		}
		return "", PostError{StatusCode: resp.StatusCode, Detail: detail}
	}

	var out createPostResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode status update response: %w", err)
	}
	return out.Data.ID, nil
}

func (t *TwitterPoster) client(ctx context.Context) *http.Client {
	if t.base != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, t.base)
	}
	return t.config.Client(ctx, t.token)
}
