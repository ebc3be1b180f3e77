package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/loadstone/loadstone/pkg/httputil"
)

// Client fetches mod metadata from the catalog's JSON API.
//
// Requests carry the configured API key; transport failures and 5xx
// responses are retried with exponential backoff. 404 maps to [ErrNotFound]
// and 401/403 to [ErrUnauthorized]; neither is retried.
//
// Client is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	game    string
	apiKey  string
	now     func() time.Time
}

// ClientOptions configures a catalog Client.
type ClientOptions struct {
	BaseURL string        // Catalog root, e.g. "https://catalog.example.com"
	Game    string        // Game slug the mod ids belong to
	APIKey  string        // Sent as the apikey header on every request
	Timeout time.Duration // Per-request timeout (0 uses DefaultTimeout)
}

// DefaultTimeout is the per-request timeout used when ClientOptions.Timeout is zero.
const DefaultTimeout = 45 * time.Second

// NewClient creates a catalog client.
func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: opts.BaseURL,
		game:    opts.Game,
		apiKey:  opts.APIKey,
		now:     time.Now,
	}
}

// apiResponse mirrors the catalog's mod endpoint payload.
type apiResponse struct {
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Requirements []Requirement `json:"requirements"`
	RequiredBy   []Requirement `json:"required_by"`
}

// Fetch retrieves metadata for id. It implements [Provider].
func (c *Client) Fetch(ctx context.Context, id ModID) (*Metadata, error) {
	url := fmt.Sprintf("%s/%s/mods/%s.json", c.baseURL, c.game, id)

	var data apiResponse
	if err := httputil.RetryWithBackoff(ctx, func() error {
		return c.get(ctx, url, &data)
	}); err != nil {
		return nil, err
	}

	category := data.Category
	if category == "" {
		category = "Default"
	}
	return &Metadata{
		ID:         id,
		Name:       data.Name,
		Category:   category,
		FetchedAt:  c.now(),
		Requires:   data.Requirements,
		RequiredBy: data.RequiredBy,
	}, nil
}

// Verify checks that the catalog accepts the client's credentials before any
// traversal begins. A failing fetch path is a hard setup failure; analysis
// must not start with a provider that cannot fetch.
func (c *Client) Verify(ctx context.Context) error {
	url := fmt.Sprintf("%s/%s/mods.json", c.baseURL, c.game)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
