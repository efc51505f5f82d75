package jikan

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	otakuerrors "github.com/lepinkainen/otaku/internal/errors"
)

// getJSON issues one GET request. Failed requests are not retried; the next
// user action issues fresh calls.
func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	slog.Debug("Upstream request", "limiter", c.rateLimiter.Name(), "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return otakuerrors.NewTransportError(sourceName, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		if wait := retryAfter(resp.Header.Get("Retry-After")); wait > 0 {
			return otakuerrors.NewRateLimitErrorWithRetry("jikan: rate limit exceeded", wait)
		}
		return otakuerrors.NewRateLimitError("jikan: rate limit exceeded")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return otakuerrors.NewTransportError(sourceName, resp.StatusCode, errors.New(strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return otakuerrors.NewMalformedResponseError(sourceName, err)
	}
	return nil
}

func retryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
