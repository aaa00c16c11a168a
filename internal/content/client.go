// Package content reads documents from the Sanity content store over its
// HTTP query API.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/influencer-hub/internal/config"
	"github.com/influencer-hub/internal/models"
)

var (
	ErrNotConfigured = errors.New("content store not configured")
	ErrEmptyQuery    = errors.New("query is required")
)

// QueryError is a non-2xx answer from the query API
type QueryError struct {
	Status      int
	Description string
}

func (e *QueryError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("sanity query failed with status %d", e.Status)
	}
	return fmt.Sprintf("sanity query failed with status %d: %s", e.Status, e.Description)
}

// Client runs GROQ queries against one dataset
type Client struct {
	cfg     config.SanityConfig
	baseURL string
	client  *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL replaces the project host, e.g. with a test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
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

// NewClient creates a content store client
func NewClient(cfg config.SanityConfig, opts ...Option) *Client {
	c := &Client{cfg: cfg, client: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" && cfg.ProjectID != "" {
		host := "api"
		if cfg.UseCDN {
			host = "apicdn"
		}
		c.baseURL = fmt.Sprintf("https://%s.%s.sanity.io", cfg.ProjectID, host)
	}
	return c
}

// Configured reports whether a project is set
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.cfg.Dataset != ""
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
	} `json:"error"`
}

// Fetch runs a GROQ query and returns the raw result
func (c *Client) Fetch(ctx context.Context, query string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s?%s",
		c.baseURL, c.cfg.APIVersion, url.PathEscape(c.cfg.Dataset), url.Values{"query": {query}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build sanity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sanity response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		_ = json.Unmarshal(body, &er)
		return nil, &QueryError{Status: resp.StatusCode, Description: er.Error.Description}
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("decode sanity response: %w", err)
	}
	if len(qr.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return qr.Result, nil
}

func fetchAll[T any](ctx context.Context, c *Client, docType string) ([]T, error) {
	raw, err := c.Fetch(ctx, fmt.Sprintf(`*[_type == %q]`, docType))
	if err != nil {
		return nil, err
	}
	out := []T{}
	if string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s documents: %w", docType, err)
	}
	return out, nil
}

// Creators lists all creator documents. Profile image URLs are resolved
// against the CDN.
func (c *Client) Creators(ctx context.Context) ([]models.Creator, error) {
	creators, err := fetchAll[models.Creator](ctx, c, models.DocumentTypeCreator)
	if err != nil {
		return nil, err
	}
	for i := range creators {
		img := creators[i].ProfileImage
		if img == nil || img.Asset.Ref == "" {
			continue
		}
		if u, err := c.ImageURL(img.Asset.Ref); err == nil {
			img.URL = u
		}
	}
	return creators, nil
}

// Campaigns lists all campaign documents
func (c *Client) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	return fetchAll[models.Campaign](ctx, c, models.DocumentTypeCampaign)
}

// ContractTemplates lists all contract template documents
func (c *Client) ContractTemplates(ctx context.Context) ([]models.ContractTemplate, error) {
	return fetchAll[models.ContractTemplate](ctx, c, models.DocumentTypeContract)
}
