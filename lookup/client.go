// Package lookup resolves 4-byte function selectors and 32-byte event topics
// to candidate signatures through an openchain-compatible signature database.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.openchain.xyz"

	lookupPath = "/signature-database/v1/lookup"

	selectorHexLen = 10
	topicHexLen    = 66
)

var (
	// ErrInvalidHash indicates a query that is neither a selector nor a topic.
	ErrInvalidHash = errors.New("lookup: hash must be a 0x-prefixed 4-byte selector or 32-byte topic")

	// ErrLookupFailed indicates the database answered with ok=false.
	ErrLookupFailed = errors.New("lookup: signature database reported failure")
)

// QueryKind is the database namespace a hash is looked up in.
type QueryKind string

const (
	QueryFunction QueryKind = "function"
	QueryEvent    QueryKind = "event"
)

// KindOf reports whether hash is a function selector or an event topic.
func KindOf(hash string) (QueryKind, error) {
	if !strings.HasPrefix(hash, "0x") && !strings.HasPrefix(hash, "0X") {
		return "", ErrInvalidHash
	}
	for _, c := range hash[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", ErrInvalidHash
		}
	}
	switch len(hash) {
	case selectorHexLen:
		return QueryFunction, nil
	case topicHexLen:
		return QueryEvent, nil
	default:
		return "", ErrInvalidHash
	}
}

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	MaxRetries    uint64
	RetryInterval time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       10 * time.Second,
		MaxRetries:    3,
		RetryInterval: 500 * time.Millisecond,
	}
}

type Client struct {
	httpClient *http.Client
	config     *Config
	logger     *zap.Logger
}

type signature struct {
	Name     string `json:"name"`
	Filtered bool   `json:"filtered"`
}

type response struct {
	Ok     bool `json:"ok"`
	Result struct {
		Function map[string][]signature `json:"function"`
		Event    map[string][]signature `json:"event"`
	} `json:"result"`
	Error string `json:"error"`
}

// NewClient returns a client for the database at cfg.BaseURL. The client is
// safe for concurrent use.
func NewClient(cfg *Config, l *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: l,
	}
}

// SetHttpClient replaces the underlying HTTP client.
func (c *Client) SetHttpClient(client *http.Client) {
	c.httpClient = client
}

// Lookup returns the signature names registered for a selector or topic, in
// the order the database lists them. An unknown hash yields an empty slice.
func (c *Client) Lookup(ctx context.Context, hash string) ([]string, error) {
	kind, err := KindOf(hash)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid query %q", hash)
	}
	hash = strings.ToLower(hash)

	var res *response
	operation := func() error {
		r, err := c.fetch(ctx, kind, hash)
		if err != nil {
			return err
		}
		res = r
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.RetryInterval
	b := backoff.WithContext(backoff.WithMaxRetries(policy, c.config.MaxRetries), ctx)

	notify := func(err error, wait time.Duration) {
		c.logger.Sugar().Debugw("Retrying signature lookup",
			zap.Error(err),
			zap.String("hash", hash),
			zap.Duration("wait", wait),
		)
	}
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		c.logger.Sugar().Errorw("Signature lookup failed",
			zap.Error(err),
			zap.String("hash", hash),
		)
		return nil, err
	}

	var entries []signature
	if kind == QueryFunction {
		entries = res.Result.Function[hash]
	} else {
		entries = res.Result.Event[hash]
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		names = append(names, e.Name)
	}
	c.logger.Sugar().Debugw("Signature lookup complete",
		zap.String("hash", hash),
		zap.Int("matches", len(names)),
	)
	return names, nil
}

// fetch performs one request. Errors that a retry cannot fix are marked permanent.
func (c *Client) fetch(ctx context.Context, kind QueryKind, hash string) (*response, error) {
	if err := ctx.Err(); err != nil {
		return nil, backoff.Permanent(err)
	}
	url := strings.TrimSuffix(c.config.BaseURL, "/") + lookupPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "failed to create request"))
	}
	q := req.URL.Query()
	q.Add(string(kind), hash)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("accept", "application/json")

	c.logger.Sugar().Debugw("Making signature lookup request",
		zap.String("url", req.URL.String()),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(errors.Wrap(err, "failed to make request"))
		}
		return nil, errors.Wrap(err, "failed to make request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	var res response
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "failed to unmarshal response"))
	}
	if !res.Ok {
		if res.Error != "" {
			return nil, backoff.Permanent(errors.Wrap(ErrLookupFailed, res.Error))
		}
		return nil, backoff.Permanent(ErrLookupFailed)
	}
	return &res, nil
}
