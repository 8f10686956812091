// Package askclient is the HTTP client for the remote question-answering
// service behind the chat widget.
//
// The service exposes a single endpoint:
//
//	GET <base>/ask?q=<url-encoded question>  ->  {"answer": "..."}
//
// A response without a usable answer is not an error; Ask returns "" and
// leaves the fallback text to the caller.
package askclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tidwall/gjson"
)

// DefaultTimeout bounds a single question round-trip.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// ErrStatus is returned (wrapped) for non-2xx responses.
var ErrStatus = errors.New("askclient: unexpected status")

// ErrMalformed is returned (wrapped) when the body is not JSON.
var ErrMalformed = errors.New("askclient: malformed response")

// Config configures a Client.
type Config struct {
	// BaseURL is the service root, e.g. "https://answers.example.com".
	BaseURL string

	// Timeout bounds each request. Default: 30s.
	Timeout time.Duration

	// CacheSize is the number of answers kept in memory. 0 disables caching.
	CacheSize int

	// CacheTTL expires cached answers. 0 keeps them until evicted.
	CacheTTL time.Duration

	// HTTPClient overrides the transport; nil builds one from Timeout.
	HTTPClient *http.Client

	// Clock drives cache expiry; nil uses the real clock.
	Clock clockwork.Clock

	Logger *slog.Logger
}

// Client asks questions of the answer service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *answerCache
	logger     *slog.Logger
}

// New returns a Client for cfg.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		logger:     cfg.Logger,
	}
	if cfg.CacheSize > 0 {
		c.cache = newAnswerCache(cfg.CacheSize, cfg.CacheTTL, cfg.Clock)
	}
	return c
}

// Ask sends question to the service and returns its answer, or "" when
// the response carries none.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	if c.cache != nil {
		if answer, ok := c.cache.get(question); ok {
			c.logger.Debug("answer cache hit", "question", question)
			return answer, nil
		}
	}

	reqURL := c.baseURL + "/ask?q=" + url.QueryEscape(question)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("askclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("askclient: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("askclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d: %s", ErrStatus, resp.StatusCode, truncate(string(body), 200))
	}

	answer, err := parseAnswer(body)
	if err != nil {
		return "", err
	}

	c.logger.Debug("answer received",
		"status", resp.StatusCode,
		"latency", time.Since(start),
		"empty", answer == "",
	)

	if c.cache != nil && answer != "" {
		c.cache.put(question, answer)
	}
	return answer, nil
}

// CacheStats returns answer cache statistics; zero when caching is off.
func (c *Client) CacheStats() CacheStats {
	if c.cache == nil {
		return CacheStats{}
	}
	return c.cache.stats()
}

func parseAnswer(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: %s", ErrMalformed, truncate(string(body), 200))
	}
	res := gjson.GetBytes(body, "answer")
	if !res.Exists() || res.Type != gjson.String {
		return "", nil
	}
	return strings.TrimSpace(res.String()), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
