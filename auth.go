package veracity

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tyulyukov/veracity-go/cache"
	"github.com/tyulyukov/veracity-go/models"
	"github.com/tyulyukov/veracity-go/session"
	"github.com/tyulyukov/veracity-go/transport"
	"github.com/tyulyukov/veracity-go/validation"
)

// AuthService defines the authentication and registration operations
type AuthService interface {
	// Register creates a pending account and returns its user ID
	Register(ctx context.Context, payload models.RegisterPayload) (string, error)
	// Login establishes a session and returns the authenticated user
	Login(ctx context.Context, payload models.LoginPayload) (*models.User, error)
	// Logout terminates the session and drops all client-held state
	Logout(ctx context.Context) error
	// ForgotPassword requests a password reset code for the email
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword sets a new password using the emailed reset code
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	// Session performs the current-session check. A 401 means "not logged
	// in" and never triggers the global invalidation side effect.
	Session(ctx context.Context) (*models.User, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	transport *transport.Client
	cache     *cache.Store
	session   *session.Store
	logger    zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(tc *transport.Client, cacheStore *cache.Store, sessionStore *session.Store, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		transport: tc,
		cache:     cacheStore,
		session:   sessionStore,
		logger:    logger,
	}
}

// Register creates a new account. The account starts in pending status and
// is approved out-of-band; callers typically follow up with a session
// poller.
func (s *authServiceImpl) Register(ctx context.Context, payload models.RegisterPayload) (string, error) {
	if err := validation.ValidateRegister(payload); err != nil {
		return "", err
	}

	var result struct {
		UserID string `json:"userId"`
	}
	if err := s.transport.Post(ctx, "/users/auth/register", payload, &result); err != nil {
		s.logger.Error().Err(err).Str("email", payload.Email).Msg("Registration failed")
		return "", err
	}

	s.logger.Info().Str("userId", result.UserID).Msg("Account registered")
	return result.UserID, nil
}

// Login establishes a session cookie and loads the authenticated user into
// the session store
func (s *authServiceImpl) Login(ctx context.Context, payload models.LoginPayload) (*models.User, error) {
	if err := validation.ValidateLogin(payload); err != nil {
		return nil, err
	}

	if err := s.transport.Post(ctx, "/users/auth/login", payload, nil); err != nil {
		return nil, err
	}

	// The login response carries only a message; the profile comes from
	// the session check.
	user, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("userId", user.ID).
		Str("status", string(user.Status)).
		Msg("Logged in")
	return user, nil
}

// Logout terminates the server session, then clears the session store and
// the whole cache
func (s *authServiceImpl) Logout(ctx context.Context) error {
	if err := s.transport.Post(ctx, "/users/auth/logout", nil, nil); err != nil {
		return err
	}

	s.session.Clear()
	s.cache.Clear()
	s.logger.Info().Msg("Logged out")
	return nil
}

// ForgotPassword requests a reset code
func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return s.transport.Post(ctx, "/users/auth/forgot-password", body, nil)
}

// ResetPassword completes a password reset
func (s *authServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body := map[string]string{
		"email":       email,
		"code":        code,
		"newPassword": newPassword,
	}
	return s.transport.Post(ctx, "/users/auth/reset-password", body, nil)
}

// Session checks whether a session is held. The request is tagged as a
// session probe so a 401 surfaces as a plain error instead of firing the
// global invalidation (avoids a redirect loop at the login screen).
func (s *authServiceImpl) Session(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.transport.Get(ctx, "/users/me", nil, &user, transport.SessionProbe()); err != nil {
		return nil, err
	}

	s.session.SetUser(user)
	return &user, nil
}
