// Package veracity is the Go client for the Veracity membership platform
// REST API. It renders server state and issues requests; all business
// rules live in the backend. The client layers typed resource services
// over a JSON transport with an ambient session cookie, keeps fetched
// views consistent through a keyed cache with optimistic mutations, and
// holds the session lifecycle in an explicit store.
package veracity

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tyulyukov/veracity-go/cache"
	"github.com/tyulyukov/veracity-go/config"
	"github.com/tyulyukov/veracity-go/logger"
	"github.com/tyulyukov/veracity-go/session"
	"github.com/tyulyukov/veracity-go/transport"
)

// Client aggregates the resource services together with the client-owned
// state: the response cache and the session store
type Client struct {
	Auth        AuthService
	Users       UserService
	Connections ConnectionService
	Events      EventService
	Posts       PostService
	Interests   InterestService
	Storage     StorageService

	// Session is the process-wide authenticated-user state
	Session *session.Store
	// Cache is the keyed response cache shared by all services
	Cache *cache.Store

	cfg       *config.Config
	transport *transport.Client
	logger    zerolog.Logger
}

// options holds optional client construction settings
type options struct {
	httpClient     *http.Client
	logger         *zerolog.Logger
	onUnauthorized func()
}

// Option configures the Client
type Option func(*options)

// WithHTTPClient replaces the underlying HTTP client. The replacement
// should carry a cookie jar for session persistence.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithLogger replaces the client logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &l
	}
}

// WithUnauthorizedHandler registers the application side effect run after
// a 401 invalidates the session, typically navigation to the login view.
// The session store and cache are already cleared when it runs.
func WithUnauthorizedHandler(handler func()) Option {
	return func(o *options) {
		o.onUnauthorized = handler
	}
}

// New creates a fully wired Client. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "pretty",
	})

	log := logger.WithComponent("client")
	if o.logger != nil {
		log = *o.logger
	}

	cacheStore := cache.NewStore()
	sessionStore := session.NewStore()

	c := &Client{
		Session: sessionStore,
		Cache:   cacheStore,
		cfg:     cfg,
		logger:  log,
	}

	// A 401 on any request other than a session probe invalidates all
	// client-held state before the application handler runs.
	unauthorized := func() {
		log.Warn().Msg("Session invalidated by 401 response")
		sessionStore.Clear()
		cacheStore.Clear()
		if o.onUnauthorized != nil {
			o.onUnauthorized()
		}
	}

	transportOpts := []transport.Option{
		transport.WithLogger(log.With().Str("component", "transport").Logger()),
		transport.WithUnauthorizedHook(unauthorized),
	}
	if o.httpClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(o.httpClient))
	}

	tc, err := transport.NewClient(cfg.API.BaseURL, cfg.APITimeout(), transportOpts...)
	if err != nil {
		return nil, err
	}
	c.transport = tc

	c.Auth = NewAuthService(tc, cacheStore, sessionStore, log.With().Str("service", "auth").Logger())
	c.Users = NewUserService(tc, cacheStore, sessionStore, log.With().Str("service", "users").Logger())
	c.Connections = NewConnectionService(tc, cacheStore, log.With().Str("service", "connections").Logger())
	c.Events = NewEventService(tc, cacheStore, log.With().Str("service", "events").Logger())
	c.Posts = NewPostService(tc, cacheStore, log.With().Str("service", "posts").Logger())
	c.Interests = NewInterestService(tc, cacheStore, log.With().Str("service", "interests").Logger())
	c.Storage = NewStorageService(tc, cfg.Storage.BaseURL, log.With().Str("service", "storage").Logger())

	return c, nil
}

// ApprovalPoller returns a poller that re-runs the session check while the
// account's membership status is pending, paced by the configured
// interval
func (c *Client) ApprovalPoller() *session.Poller {
	return session.NewPoller(c.cfg.SessionPollInterval(), c.Auth.Session)
}

// PendingRequestsPoller returns a poller that keeps the pending connection
// requests fresh, paced by the configured interval
func (c *Client) PendingRequestsPoller() *PendingRequestsPoller {
	return NewPendingRequestsPoller(c.cfg.PendingRequestsPollInterval(), c.Users.PendingRequests)
}
