// Package youtube talks to the YouTube Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/influencer-hub/internal/models"
	"google.golang.org/api/googleapi"
	yt "google.golang.org/api/youtube/v3"
)

// DefaultBaseURL is the public YouTube Data API endpoint
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

var (
	// ErrMissingAPIKey is returned before any request when no key is configured
	ErrMissingAPIKey = errors.New("YouTube API key not configured")
	// ErrRequestFailed wraps transport failures where no upstream status exists
	ErrRequestFailed = errors.New("youtube request failed")
	// ErrDecode wraps a 2xx response whose body could not be decoded
	ErrDecode = errors.New("youtube response decode failed")
)

// SearchParams narrows a channel search
type SearchParams struct {
	Query      string
	RegionCode string
	MaxResults int
}

// Client handles direct HTTP requests to the YouTube API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewClient creates a new YouTube client. An empty key is accepted; every
// call then fails with ErrMissingAPIKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// SearchChannels runs search.list restricted to channels
func (c *Client) SearchChannels(ctx context.Context, params SearchParams) (*yt.SearchListResponse, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", params.Query)
	q.Set("type", "channel")
	q.Set("maxResults", strconv.Itoa(params.MaxResults))
	if params.RegionCode != "" {
		q.Set("regionCode", params.RegionCode)
	}

	var out yt.SearchListResponse
	if err := c.get(ctx, "search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListChannels hydrates snippet and statistics for all ids in one
// channels.list call.
func (c *Client) ListChannels(ctx context.Context, ids []string) (*models.ChannelResponse, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics")
	q.Set("id", strings.Join(ids, ","))

	var out models.ChannelResponse
	if err := c.get(ctx, "channels", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, resource string, q url.Values, out any) error {
	if !c.Configured() {
		return ErrMissingAPIKey
	}
	q.Set("key", c.apiKey)

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRequestFailed, resource, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			// the body may carry its own code; the HTTP status wins
			apiErr.Code = resp.StatusCode
		}
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, resource, err)
	}
	return nil
}
