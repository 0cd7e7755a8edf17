package httpapi

import (
	"context"
	"time"
)

const DefaultKeepAliveInterval = 4 * time.Minute

type KeepAliveOptions struct {
	Interval time.Duration
	// Visible reports whether the user is looking at the client; nil means
	// always visible.
	Visible func() bool
	// Online is an outside connectivity signal; nil pings on every visible
	// tick. The client's own flag is not consulted because the ping is what
	// brings it back after a failure.
	Online func() bool
}

// KeepAlive pings the health endpoint on every tick until ctx is done, so
// the next real request does not pay for a cold backend. Failures are
// swallowed.
func (c *Client) KeepAlive(ctx context.Context, opts KeepAliveOptions) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultKeepAliveInterval
	}
	log := c.log.Named("keepalive")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if opts.Visible != nil && !opts.Visible() {
				continue
			}
			if opts.Online != nil && !opts.Online() {
				continue
			}
			if err := c.Ping(ctx); err != nil {
				log.Debug("ping failed", "error", err, "online", c.Online())
			}
		}
	}
}
