package veracity

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tyulyukov/veracity-go/cache"
	"github.com/tyulyukov/veracity-go/models"
	"github.com/tyulyukov/veracity-go/transport"
)

// InterestService exposes the global interest tags
type InterestService interface {
	// List fetches all interests. The set changes rarely, so a fresh
	// cached copy is served without a request.
	List(ctx context.Context) ([]models.Interest, error)
}

// interestServiceImpl implements InterestService
type interestServiceImpl struct {
	transport *transport.Client
	cache     *cache.Store
	logger    zerolog.Logger
}

// NewInterestService creates a new InterestService
func NewInterestService(tc *transport.Client, cacheStore *cache.Store, logger zerolog.Logger) InterestService {
	return &interestServiceImpl{
		transport: tc,
		cache:     cacheStore,
		logger:    logger,
	}
}

// List returns the global interest tags
func (s *interestServiceImpl) List(ctx context.Context) ([]models.Interest, error) {
	key := keyInterests()
	if value, ok := s.cache.GetFresh(key); ok {
		if interests, valid := value.([]models.Interest); valid {
			return interests, nil
		}
	}

	version := s.cache.Version(key)

	var interests []models.Interest
	if err := s.transport.Get(ctx, "/interests", nil, &interests); err != nil {
		return nil, err
	}

	cacheItem(s.cache, key, version, interests)
	return interests, nil
}
