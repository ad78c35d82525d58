// Package probe implements ports.Checker against a live profile endpoint.
package probe

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/pcasas/gramhound/internal/domain"
	"github.com/pcasas/gramhound/internal/infra/httpclient"
	"github.com/pcasas/gramhound/internal/ports"
)

const defaultMaxBodyBytes = 256 * 1024 // 256KB

type Checker struct {
	client       *http.Client
	endpoint     func(candidate string) string
	userAgents   []string
	confirmPath  string
	maxBodyBytes int64
	pickUA       func(n int) int
}

type Option func(*Checker)

func WithMaxBodyBytes(n int64) Option {
	return func(c *Checker) { c.maxBodyBytes = n }
}

// WithClient sets a custom HTTP client (tests use the httptest client).
func WithClient(client *http.Client) Option {
	return func(c *Checker) { c.client = client }
}

// WithUAPicker fixes the user agent choice; tests use this for determinism.
func WithUAPicker(pick func(n int) int) Option {
	return func(c *Checker) { c.pickUA = pick }
}

func New(cfg domain.Config, opts ...Option) *Checker {
	clientCfg := httpclient.DefaultConfig()
	if cfg.RequestTimeout > 0 {
		clientCfg.Timeout = cfg.RequestTimeout
	}

	c := &Checker{
		client:       httpclient.New(clientCfg),
		endpoint:     cfg.ProbeURL,
		userAgents:   cfg.UserAgents,
		confirmPath:  cfg.ConfirmTakenPath,
		maxBodyBytes: defaultMaxBodyBytes,
		pickUA:       rand.IntN,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Checker = (*Checker)(nil)

// Check issues one GET for the candidate's profile URL and classifies the
// response. Transport failures land in the result, not the error return.
func (c *Checker) Check(ctx context.Context, candidate string) (domain.CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.CheckResult{}, err
	}

	result := domain.CheckResult{Candidate: candidate}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(candidate), nil)
	if err != nil {
		return domain.CheckResult{}, &domain.OpError{
			Op:   "probe.build_request",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	if len(c.userAgents) > 0 {
		req.Header.Set("User-Agent", c.userAgents[c.pickUA(len(c.userAgents))])
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := c.client.Do(req)
	result.Latency = time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.CheckResult{}, ctxErr
		}
		result.Status = domain.StatusError
		result.Err = domain.NewProbeError(err)
		return result, nil
	}
	defer resp.Body.Close()

	result.HTTPStatus = resp.StatusCode
	result.Status = classify(resp.StatusCode)

	if result.Status == domain.StatusTaken && c.confirmPath != "" {
		body, _, readErr := readBounded(resp.Body, c.maxBodyBytes)
		if readErr != nil || !confirmTaken(body, c.confirmPath) {
			// 200 without profile data is a login wall, not a real profile.
			result.Status = domain.StatusUnknown
		}
	}

	return result, nil
}

func classify(status int) domain.Status {
	switch status {
	case http.StatusNotFound:
		return domain.StatusAvailable
	case http.StatusOK:
		return domain.StatusTaken
	case http.StatusForbidden, http.StatusTooManyRequests:
		return domain.StatusBlocked
	default:
		return domain.StatusUnknown
	}
}

// confirmTaken reports whether the body is JSON carrying a non-empty value at
// the configured JSONPath.
func confirmTaken(body []byte, path string) bool {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return false
	}
	val, err := jsonpath.Get(path, doc)
	if err != nil || val == nil {
		return false
	}
	if s, ok := val.(string); ok && s == "" {
		return false
	}
	return true
}

func readBounded(r io.Reader, maxBytes int64) ([]byte, bool, error) {
	lim := io.LimitReader(r, maxBytes+1)
	b, err := io.ReadAll(lim)
	if err != nil {
		return nil, false, err
	}
	if int64(len(b)) > maxBytes {
		return b[:maxBytes], true, nil
	}
	return b, false, nil
}
