// Package profile fetches real user data from the upstream user API.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/okian/ghostboard/internal/domain/model"
	"github.com/okian/ghostboard/pkg/metrics"
)

const (
	userDataPath          = "/api/user_data"
	defaultTimeout        = 2 * time.Second
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 100 * time.Millisecond
	maxBodyBytes          = 1 << 16
)

// Fetcher resolves a user id to a profile.
type Fetcher interface {
	Fetch(ctx context.Context, userID string) (model.Profile, error)
}

// Client calls GET {base}/api/user_data?user_id={id}.
type Client struct {
	baseURL        string
	http           *http.Client
	timeout        time.Duration
	maxAttempts    int
	initialBackoff time.Duration
}

var _ Fetcher = (*Client)(nil)

// userData is the upstream payload.
type userData struct {
	FullName           string  `json:"full_name"`
	PackID             int     `json:"pack_id"`
	TotalScore         int     `json:"total_score"`
	QuestionsAnswered  int     `json:"questions_answered"`
	AveragePace        float64 `json:"average_pace"`
	SubscriptionStatus string  `json:"subscription_status"`
}

// New creates a Client. An empty baseURL yields a client whose lookups
// fail with ErrDisabled.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{},
		timeout:        defaultTimeout,
		maxAttempts:    defaultMaxAttempts,
		initialBackoff: defaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether the client has an upstream configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Fetch looks the user up. A 404 returns ErrNotFound immediately; 5xx and
// transport failures are retried with exponential backoff.
func (c *Client) Fetch(ctx context.Context, userID string) (model.Profile, error) {
	if !c.Enabled() {
		metrics.RecordProfileFetch("disabled", 0)
		return model.Profile{}, ErrDisabled
	}
	if strings.TrimSpace(userID) == "" {
		return model.Profile{}, ErrBadInput
	}

	start := time.Now()
	var p model.Profile
	err := c.retry(ctx, func() error {
		var err error
		p, err = c.fetchOnce(ctx, userID)
		return err
	})

	elapsed := time.Since(start).Seconds()
	switch {
	case err == nil:
		metrics.RecordProfileFetch("ok", elapsed)
	case errors.Is(err, ErrNotFound):
		metrics.RecordProfileFetch("not_found", elapsed)
	default:
		metrics.RecordProfileFetch("error", elapsed)
	}
	return p, err
}

// retry runs op with exponential backoff until it succeeds, returns a
// permanent error, or maxAttempts is reached.
func (c *Client) retry(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialBackoff
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxAttempts-1)), ctx)

	return backoff.RetryNotify(op, policy, func(error, time.Duration) { metrics.RecordProfileRetry() })
}

func (c *Client) fetchOnce(ctx context.Context, userID string) (model.Profile, error) {
	var data userData
	if err := c.getJSON(ctx, userDataPath, url.Values{"user_id": {userID}}, &data); err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Profile{}, backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, userID))
		}
		return model.Profile{}, err
	}

	return model.Profile{
		UserID:             userID,
		FullName:           data.FullName,
		PackID:             data.PackID,
		TotalScore:         data.TotalScore,
		QuestionsAnswered:  data.QuestionsAnswered,
		AveragePace:        data.AveragePace,
		SubscriptionStatus: data.SubscriptionStatus,
		FetchedAt:          time.Now().UTC(),
	}, nil
}

// getJSON performs one GET and decodes the body into v. 404 maps to a
// permanent ErrNotFound, other 4xx and decode failures are permanent, 5xx
// and transport failures are retryable.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("%w: %v", ErrUpstream, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", ErrUpstream, ctx.Err()))
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, path))
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return backoff.Permanent(fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		return backoff.Permanent(fmt.Errorf("%w: decode: %v", ErrUpstream, err))
	}
	return nil
}
