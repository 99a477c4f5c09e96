package veracity

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/tyulyukov/veracity-go/cache"
	"github.com/tyulyukov/veracity-go/models"
	"github.com/tyulyukov/veracity-go/pagination"
	"github.com/tyulyukov/veracity-go/session"
	"github.com/tyulyukov/veracity-go/transport"
	"github.com/tyulyukov/veracity-go/validation"
)

// UserService defines profile and member-directory operations
type UserService interface {
	// GetMe fetches the caller's own profile
	GetMe(ctx context.Context) (*models.User, error)
	// UpdateMe patches the caller's profile
	UpdateMe(ctx context.Context, payload models.UpdateProfilePayload) (*models.User, error)
	// List fetches one page of the member directory
	List(ctx context.Context, query models.UsersQuery, params pagination.Params) (*models.PaginatedUsersResponse, error)
	// Pager walks the member directory one page at a time
	Pager(query models.UsersQuery, limit int) *pagination.Pager[models.OtherUser]
	// GetByID fetches another member's full profile
	GetByID(ctx context.Context, userID string) (*models.OtherUserDetail, error)
	// PendingRequests fetches members with an open incoming request
	PendingRequests(ctx context.Context) (*models.PaginatedUsersResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	transport *transport.Client
	cache     *cache.Store
	session   *session.Store
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(tc *transport.Client, cacheStore *cache.Store, sessionStore *session.Store, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		transport: tc,
		cache:     cacheStore,
		session:   sessionStore,
		logger:    logger,
	}
}

// GetMe fetches the caller's profile and refreshes the session store
func (s *userServiceImpl) GetMe(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.transport.Get(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}

	s.session.SetUser(user)
	return &user, nil
}

// UpdateMe patches the caller's profile and refreshes the session store
func (s *userServiceImpl) UpdateMe(ctx context.Context, payload models.UpdateProfilePayload) (*models.User, error) {
	if err := validation.ValidateUpdateProfile(payload); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.transport.Patch(ctx, "/users/me", payload, &user); err != nil {
		return nil, err
	}

	s.session.SetUser(user)
	// Member listings embed profile fields; force them to reconcile.
	s.cache.Invalidate(s.cache.KeysWithPrefix(keyUsersFamily())...)

	return &user, nil
}

// List fetches one page of the member directory and records it under the
// query's cache key
func (s *userServiceImpl) List(ctx context.Context, query models.UsersQuery, params pagination.Params) (*models.PaginatedUsersResponse, error) {
	values := usersQueryValues(query)
	key := keyUsersList(values)
	params.Apply(values)

	version := s.cache.Version(key)

	var page models.PaginatedUsersResponse
	if err := s.transport.Get(ctx, "/users", values, &page); err != nil {
		return nil, err
	}

	cachePages(s.cache, key, version, params.Cursor == "", page)
	return &page, nil
}

// Pager walks the member directory with the given filters
func (s *userServiceImpl) Pager(query models.UsersQuery, limit int) *pagination.Pager[models.OtherUser] {
	return pagination.NewPager(limit, func(ctx context.Context, params pagination.Params) (pagination.Page[models.OtherUser], error) {
		page, err := s.List(ctx, query, params)
		if err != nil {
			return pagination.Page[models.OtherUser]{}, err
		}
		return pagination.Page[models.OtherUser]{Items: page.Users, NextCursor: page.NextCursor}, nil
	})
}

// GetByID fetches a member's full profile and caches the detail view
func (s *userServiceImpl) GetByID(ctx context.Context, userID string) (*models.OtherUserDetail, error) {
	key := keyUserDetail(userID)
	version := s.cache.Version(key)

	var user models.OtherUserDetail
	if err := s.transport.Get(ctx, "/users/"+userID, nil, &user); err != nil {
		return nil, err
	}

	cacheItem(s.cache, key, version, &user)
	return &user, nil
}

// PendingRequests fetches the members who sent the caller a connection
// request. Callers poll this on an interval to keep the notification badge
// fresh.
func (s *userServiceImpl) PendingRequests(ctx context.Context) (*models.PaginatedUsersResponse, error) {
	values := url.Values{}
	values.Set("connectionFilter", string(models.ConnectionFilterReceivedRequests))
	values.Set("limit", "50")

	key := keyPendingRequests()
	version := s.cache.Version(key)

	var page models.PaginatedUsersResponse
	if err := s.transport.Get(ctx, "/users", values, &page); err != nil {
		return nil, err
	}

	cacheItem(s.cache, key, version, &page)
	return &page, nil
}

// usersQueryValues encodes the member-search filters into query values
func usersQueryValues(query models.UsersQuery) url.Values {
	values := url.Values{}
	for _, id := range query.InterestIDs {
		values.Add("interestIds", id)
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Position != "" {
		values.Set("position", query.Position)
	}
	if query.ConnectionFilter != "" && query.ConnectionFilter != models.ConnectionFilterAll {
		values.Set("connectionFilter", string(query.ConnectionFilter))
	}
	return values
}
