package monitor

import (
	"context"
	"time"
)

// Fetcher retrieves the raw schedule-page body for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
