package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tyulyukov/veracity-go/apperrors"
	"github.com/tyulyukov/veracity-go/logger"
	"github.com/tyulyukov/veracity-go/models"
)

// CheckFunc performs one current-session check against the backend
type CheckFunc func(ctx context.Context) (*models.User, error)

// Poller re-runs the session check while the account's membership status
// is pending. Accounts are approved out-of-band, so the client polls until
// the status changes. A rate limiter paces the checks regardless of how
// fast individual calls return.
type Poller struct {
	check   CheckFunc
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewPoller creates a poller running check at most once per interval
func NewPoller(interval time.Duration, check CheckFunc) *Poller {
	return &Poller{
		check:   check,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger.WithComponent("session"),
	}
}

// WaitForApproval polls the session check until the membership status
// leaves pending, returning the user in their final state. It stops with
// the context's error on cancellation, and with the API error when the
// session itself becomes invalid. Transient failures are logged and the
// poll continues.
func (p *Poller) WaitForApproval(ctx context.Context) (*models.User, error) {
	for {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		user, err := p.check(ctx)
		if err != nil {
			if apperrors.IsUnauthorized(err) {
				return nil, err
			}
			p.logger.Warn().Err(err).Msg("Session check failed, will retry")
			continue
		}

		if user.Status != models.UserStatusPending {
			p.logger.Info().
				Str("status", string(user.Status)).
				Msg("Membership status resolved")
			return user, nil
		}
	}
}
