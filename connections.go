package veracity

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/tyulyukov/veracity-go/cache"
	"github.com/tyulyukov/veracity-go/models"
	"github.com/tyulyukov/veracity-go/pagination"
	"github.com/tyulyukov/veracity-go/transport"
	"github.com/tyulyukov/veracity-go/validation"
)

// ConnectionService defines the connection-graph operations. Requests are
// directed; the server keeps at most one outstanding request per ordered
// pair and approval makes the relationship symmetric.
type ConnectionService interface {
	// SendRequest sends a connection request to a member. The result
	// reports whether the server auto-approved it.
	SendRequest(ctx context.Context, targetUserID string) (*models.Connection, error)
	// WithdrawRequest withdraws the caller's outstanding request
	WithdrawRequest(ctx context.Context, targetUserID string) error
	// RemoveConnection severs an established connection
	RemoveConnection(ctx context.Context, otherUserID string) error
	// Respond approves or ignores an incoming request
	Respond(ctx context.Context, requesterID string, action models.ConnectionResponseAction) (*models.Connection, error)
	// List fetches one page of a member's connections
	List(ctx context.Context, userID string, params pagination.Params) (*models.PaginatedConnectionsResponse, error)
	// Pager walks a member's connections one page at a time
	Pager(userID string, limit int) *pagination.Pager[models.ConnectedUser]
}

// connectionServiceImpl implements ConnectionService
type connectionServiceImpl struct {
	transport *transport.Client
	cache     *cache.Store
	logger    zerolog.Logger
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(tc *transport.Client, cacheStore *cache.Store, logger zerolog.Logger) ConnectionService {
	return &connectionServiceImpl{
		transport: tc,
		cache:     cacheStore,
		logger:    logger,
	}
}

// SendRequest sends a connection request
func (s *connectionServiceImpl) SendRequest(ctx context.Context, targetUserID string) (*models.Connection, error) {
	var conn models.Connection
	if err := s.transport.Post(ctx, "/connections/"+targetUserID, nil, &conn); err != nil {
		return nil, err
	}

	if conn.WasAutoApproved {
		s.logger.Debug().Str("targetUserId", targetUserID).Msg("Connection request auto-approved")
	}

	s.invalidateGraphViews()
	return &conn, nil
}

// WithdrawRequest withdraws the caller's pending request
func (s *connectionServiceImpl) WithdrawRequest(ctx context.Context, targetUserID string) error {
	if err := s.transport.Delete(ctx, "/connections/"+targetUserID); err != nil {
		return err
	}

	s.invalidateGraphViews()
	return nil
}

// RemoveConnection severs an established connection
func (s *connectionServiceImpl) RemoveConnection(ctx context.Context, otherUserID string) error {
	if err := s.transport.Delete(ctx, "/connections/"+otherUserID+"/connection"); err != nil {
		return err
	}

	s.invalidateGraphViews()
	return nil
}

// Respond approves or ignores an incoming request
func (s *connectionServiceImpl) Respond(ctx context.Context, requesterID string, action models.ConnectionResponseAction) (*models.Connection, error) {
	payload := models.RespondToConnectionPayload{Response: action}
	if err := validation.ValidateConnectionResponse(payload); err != nil {
		return nil, err
	}

	var conn models.Connection
	if err := s.transport.Patch(ctx, "/connections/"+requesterID+"/respond", payload, &conn); err != nil {
		return nil, err
	}

	s.invalidateGraphViews()
	return &conn, nil
}

// List fetches one page of a member's connections and records it under the
// member's connections key
func (s *connectionServiceImpl) List(ctx context.Context, userID string, params pagination.Params) (*models.PaginatedConnectionsResponse, error) {
	key := keyConnections(userID)
	version := s.cache.Version(key)

	query := url.Values{}
	params.Apply(query)

	var page models.PaginatedConnectionsResponse
	if err := s.transport.Get(ctx, "/connections/users/"+userID, query, &page); err != nil {
		return nil, err
	}

	cachePages(s.cache, key, version, params.Cursor == "", page)
	return &page, nil
}

// Pager walks a member's connections
func (s *connectionServiceImpl) Pager(userID string, limit int) *pagination.Pager[models.ConnectedUser] {
	return pagination.NewPager(limit, func(ctx context.Context, params pagination.Params) (pagination.Page[models.ConnectedUser], error) {
		page, err := s.List(ctx, userID, params)
		if err != nil {
			return pagination.Page[models.ConnectedUser]{}, err
		}
		return pagination.Page[models.ConnectedUser]{Items: page.Users, NextCursor: page.NextCursor}, nil
	})
}

// invalidateGraphViews marks every view that reflects connection state
// stale: member listings, member details, connection lists and the pending
// requests badge
func (s *connectionServiceImpl) invalidateGraphViews() {
	keys := s.cache.KeysWithPrefix(keyUsersFamily())
	keys = append(keys, s.cache.KeysWithPrefix(keyConnectionsFamily())...)
	keys = append(keys, keyPendingRequests())
	s.cache.Invalidate(keys...)
}
