// Package pixabay is the photo search gateway. Each SearchPhotos call issues
// exactly one GET against the Pixabay search API; there is no retry or cache.
package pixabay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/pixa/internal/domain"
)

const (
	DefaultBaseURL = "https://pixabay.com/api/"
	defaultTimeout = 15 * time.Second
	userAgent      = "Pixa/1.0"

	// maxErrorBody caps how much of an error response is logged
	maxErrorBody = 512
)

// Options configures a Client
type Options struct {
	BaseURL     string
	Key         string
	ImageType   string // "photo"
	Orientation string // "horizontal"
	SafeSearch  bool
	Timeout     time.Duration
}

// Client implements domain.PhotoSearcher for Pixabay
type Client struct {
	baseURL     string
	key         string
	imageType   string
	orientation string
	safeSearch  bool
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient creates a new Pixabay API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ImageType == "" {
		opts.ImageType = "photo"
	}
	if opts.Orientation == "" {
		opts.Orientation = "horizontal"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		baseURL:     opts.BaseURL,
		key:         opts.Key,
		imageType:   opts.ImageType,
		orientation: opts.Orientation,
		safeSearch:  opts.SafeSearch,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger,
	}
}

// SearchPhotos fetches one page of results for req
func (c *Client) SearchPhotos(ctx context.Context, req domain.PageRequest) (*domain.PageResult, error) {
	reqURL, err := c.buildURL(req)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.RequestSetupFailed, Err: err}
	}

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("pixabay JSON parse error", "error", err, "bodyLen", len(body))
		return nil, &domain.FetchError{
			Kind:       domain.ServerRejected,
			StatusCode: http.StatusOK,
			Err:        fmt.Errorf("failed to parse response: %w", err),
		}
	}

	page := MapPage(&resp)
	c.logger.Debug("pixabay page fetched",
		"query", req.Query, "page", req.Page, "items", len(page.Items), "totalHits", page.TotalHits)
	return page, nil
}

// buildURL assembles the search URL. The key is part of the query string.
func (c *Client) buildURL(req domain.PageRequest) (string, error) {
	if c.key == "" {
		return "", domain.ErrMissingAPIKey
	}
	if req.Page < 1 || req.PerPage < 1 {
		return "", fmt.Errorf("invalid page %d / per_page %d", req.Page, req.PerPage)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid base url %q", c.baseURL)
	}

	query := u.Query()
	query.Set("image_type", c.imageType)
	query.Set("orientation", c.orientation)
	query.Set("safesearch", strconv.FormatBool(c.safeSearch))
	query.Set("page", strconv.Itoa(req.Page))
	query.Set("per_page", strconv.Itoa(req.PerPage))
	query.Set("key", c.key)
	query.Set("q", req.Query)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// doRequest performs the GET and classifies failures into the three fetch kinds
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.FetchError{
			Kind: domain.RequestSetupFailed,
			Err:  fmt.Errorf("failed to create request: %w", err),
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("pixabay request", "url", redactKey(req.URL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("pixabay request failed", "error", redactErr(err))
		return nil, &domain.FetchError{Kind: domain.NoResponse, Err: redactErr(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("pixabay request error", "status", resp.StatusCode, "body", string(snippet))
		return nil, &domain.FetchError{
			Kind:       domain.ServerRejected,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{
			Kind: domain.NoResponse,
			Err:  fmt.Errorf("failed to read response: %w", err),
		}
	}
	return body, nil
}

// redactKey returns u as a string with the API key masked
func redactKey(u *url.URL) string {
	cp := *u
	q := cp.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		cp.RawQuery = q.Encode()
	}
	return cp.String()
}

// redactErr strips the request URL (and with it the key) from transport errors
func redactErr(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
