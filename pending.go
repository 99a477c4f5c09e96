package veracity

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tyulyukov/veracity-go/apperrors"
	"github.com/tyulyukov/veracity-go/logger"
	"github.com/tyulyukov/veracity-go/models"
)

// PendingRequestsFunc fetches the current pending connection requests
type PendingRequestsFunc func(ctx context.Context) (*models.PaginatedUsersResponse, error)

// PendingRequestsPoller keeps the incoming-request badge fresh. Connection
// requests arrive out-of-band, so the client refetches them on a fixed
// interval while the member is signed in. A rate limiter paces the
// refreshes regardless of how fast individual calls return.
type PendingRequestsPoller struct {
	fetch   PendingRequestsFunc
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewPendingRequestsPoller creates a poller running fetch at most once per
// interval
func NewPendingRequestsPoller(interval time.Duration, fetch PendingRequestsFunc) *PendingRequestsPoller {
	return &PendingRequestsPoller{
		fetch:   fetch,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger.WithComponent("pending-requests"),
	}
}

// Run polls until the context is cancelled, passing each fetched page to
// handle. It stops with the context's error on cancellation and with the
// API error when the session becomes invalid. Transient failures are
// logged and the poll continues.
func (p *PendingRequestsPoller) Run(ctx context.Context, handle func(*models.PaginatedUsersResponse)) error {
	for {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}

		page, err := p.fetch(ctx)
		if err != nil {
			if apperrors.IsUnauthorized(err) {
				return err
			}
			p.logger.Warn().Err(err).Msg("Pending requests refresh failed, will retry")
			continue
		}

		handle(page)
	}
}
