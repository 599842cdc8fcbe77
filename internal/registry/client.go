// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry queries the SCB company-register search API. The
// client retries transient failures with exponential backoff, honors the
// register's rate limit across the whole run, and caches responses per
// normalized query so repeated variants cost nothing.
package registry

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/praktikjakt/scb-match/internal/normalize"
	"github.com/praktikjakt/scb-match/pkg/types"
)

// defaultBaseURL is the production register search endpoint.
const defaultBaseURL = "https://privateapi.scb.se/nv0101/v1/sokpavar/api/je/HamtaForetag"

const (
	defaultTimeout       = 30 * time.Second
	defaultRateDelay     = 500 * time.Millisecond
	defaultMaxRetries    = 5
	defaultBackoffBase   = 500 * time.Millisecond
	defaultBackoffFactor = 2.0
)

// searchRequest is the register's search payload: active, registered
// companies whose name contains the query string.
type searchRequest struct {
	CompanyStatus      string           `json:"Företagsstatus"`
	RegistrationStatus string           `json:"Registreringsstatus"`
	Variables          []searchVariable `json:"variabler"`
}

type searchVariable struct {
	Value1   string `json:"Varde1"`
	Value2   string `json:"Varde2"`
	Operator string `json:"Operator"`
	Field    string `json:"Variabel"`
}

// Client searches the company register. It is not safe for concurrent
// use: resolution is sequential by design, because the register's rate
// limit applies to the combined call stream.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	backoff    time.Duration
	factor     float64

	// limiter spaces out every network call, including retries.
	limiter *rate.Limiter

	// sleep waits for backoff periods. Tests replace it to run retry
	// sequences without wall-clock delays.
	sleep func(ctx context.Context, d time.Duration) error

	// cache maps normalized query -> candidates for the process
	// lifetime. Queries are deduplicated per run, not across runs.
	cache map[string][]types.Candidate
}

// New builds a register client from cfg, loading the client-certificate
// pair the API requires when one is configured.
func New(cfg types.RegistryConfig) (*Client, error) {
	transport := http.DefaultTransport
	if cfg.CertFile != "" {
		keyFile := cfg.KeyFile
		if keyFile == "" {
			keyFile = cfg.CertFile
		}
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{cert}},
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rateDelay := cfg.RateLimitDelay
	if rateDelay <= 0 {
		rateDelay = defaultRateDelay
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	backoff := cfg.BackoffBase
	if backoff <= 0 {
		backoff = defaultBackoffBase
	}
	factor := cfg.BackoffFactor
	if factor <= 1 {
		factor = defaultBackoffFactor
	}

	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		maxRetries: maxRetries,
		backoff:    backoff,
		factor:     factor,
		limiter:    rate.NewLimiter(rate.Every(rateDelay), 1),
		sleep:      sleepContext,
		cache:      make(map[string][]types.Candidate),
	}, nil
}

// Search returns the register candidates whose name contains query.
// Responses are cached by normalized query; transient failures (network,
// 429, 5xx) are retried with growing backoff until the attempt budget is
// spent. Terminal failures return an *APIError.
func (c *Client) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	key := normalize.Name(query)
	if candidates, ok := c.cache[key]; ok {
		return candidates, nil
	}

	payload, err := json.Marshal(searchRequest{
		CompanyStatus:      "1",
		RegistrationStatus: "1",
		Variables: []searchVariable{
			{Value1: query, Operator: "Innehaller", Field: "Namn"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search payload: %w", err)
	}

	delay := c.backoff
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &APIError{Kind: KindNetwork, Err: err}
			if serr := c.sleep(ctx, delay); serr != nil {
				return nil, serr
			}
			delay = time.Duration(float64(delay) * c.factor)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := max(delay, retryAfter(resp))
			drain(resp)
			lastErr = &APIError{Kind: KindRateLimited, Status: resp.StatusCode}
			if serr := c.sleep(ctx, wait); serr != nil {
				return nil, serr
			}
			delay = time.Duration(float64(delay) * c.factor)
			continue

		case resp.StatusCode >= 500:
			drain(resp)
			lastErr = &APIError{Kind: KindServer, Status: resp.StatusCode}
			if serr := c.sleep(ctx, delay); serr != nil {
				return nil, serr
			}
			delay = time.Duration(float64(delay) * c.factor)
			continue

		case resp.StatusCode != http.StatusOK:
			drain(resp)
			return nil, &APIError{Kind: KindHTTPStatus, Status: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, &APIError{Kind: KindBadResponse, Status: resp.StatusCode, Err: err}
		}

		candidates, err := decodeCandidates(body)
		if err != nil {
			return nil, &APIError{Kind: KindBadResponse, Status: resp.StatusCode, Err: err}
		}

		c.cache[key] = candidates
		return candidates, nil
	}

	return nil, &APIError{Kind: KindExhausted, Err: lastErr}
}

// CacheLen reports how many distinct normalized queries are cached.
func (c *Client) CacheLen() int { return len(c.cache) }

// retryAfter parses a Retry-After header given in seconds. Zero means
// the server gave no usable value.
func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// drain empties and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
