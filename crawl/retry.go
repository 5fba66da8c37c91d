package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwestrik/siteqa"
)

// DefaultRetryDelays returns the backoff schedule for fetch retries:
// 1s, 2s, 4s (three retries, four attempts total).
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry fetches a URL, retrying once per entry in delays.
// Retry policy is data, not behavior: tests pass zero-length or zero-valued
// delay schedules instead of waiting.
func fetchWithRetry(ctx context.Context, fetcher siteqa.Fetcher, url string, delays []time.Duration, logger *slog.Logger) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Debug("fetch retry",
				"url", url,
				"attempt", attempt+2,
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
