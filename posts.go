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

// PostService defines the posts, comments and likes surface of the feed
type PostService interface {
	// Feed fetches one page of the global feed
	Feed(ctx context.Context, params pagination.Params) (*models.PaginatedPostsResponse, error)
	// FeedPager walks the global feed one page at a time
	FeedPager(limit int) *pagination.Pager[models.Post]
	// Mine fetches one page of the caller's own posts
	Mine(ctx context.Context, params pagination.Params) (*models.PaginatedMyPostsResponse, error)
	// ByUser fetches one page of a member's posts
	ByUser(ctx context.Context, userID string, params pagination.Params) (*models.PaginatedPostsResponse, error)
	// GetByID fetches a single post
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	// Create publishes a post; it must carry text or at least one image
	Create(ctx context.Context, payload models.CreatePostPayload) (*models.Post, error)
	// Update edits an owned post
	Update(ctx context.Context, postID string, payload models.UpdatePostPayload) (*models.Post, error)
	// Delete removes an owned post
	Delete(ctx context.Context, postID string) error
	// Like likes a post, optimistically across every cached view
	Like(ctx context.Context, postID string) error
	// Unlike removes a like, optimistically across every cached view
	Unlike(ctx context.Context, postID string) error
	// Comments fetches one page of a post's comments
	Comments(ctx context.Context, postID string, params pagination.Params) (*models.PaginatedCommentsResponse, error)
	// CreateComment adds a comment to a post
	CreateComment(ctx context.Context, postID string, payload models.CreateCommentPayload) (*models.Comment, error)
	// UpdateComment edits an owned comment
	UpdateComment(ctx context.Context, postID, commentID string, payload models.UpdateCommentPayload) (*models.Comment, error)
	// DeleteComment removes an owned comment
	DeleteComment(ctx context.Context, postID, commentID string) error
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	transport *transport.Client
	cache     *cache.Store
	logger    zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(tc *transport.Client, cacheStore *cache.Store, logger zerolog.Logger) PostService {
	return &postServiceImpl{
		transport: tc,
		cache:     cacheStore,
		logger:    logger,
	}
}

// Feed fetches one page of the global feed and records it under the feed
// key
func (s *postServiceImpl) Feed(ctx context.Context, params pagination.Params) (*models.PaginatedPostsResponse, error) {
	key := keyPostFeed()
	version := s.cache.Version(key)

	query := url.Values{}
	params.Apply(query)

	var page models.PaginatedPostsResponse
	if err := s.transport.Get(ctx, "/posts/feed", query, &page); err != nil {
		return nil, err
	}

	cachePages(s.cache, key, version, params.Cursor == "", page)
	return &page, nil
}

// FeedPager walks the global feed
func (s *postServiceImpl) FeedPager(limit int) *pagination.Pager[models.Post] {
	return pagination.NewPager(limit, func(ctx context.Context, params pagination.Params) (pagination.Page[models.Post], error) {
		page, err := s.Feed(ctx, params)
		if err != nil {
			return pagination.Page[models.Post]{}, err
		}
		return pagination.Page[models.Post]{Items: page.Posts, NextCursor: page.NextCursor}, nil
	})
}

// Mine fetches one page of the caller's own posts. The response shape has
// no embedded author, so it caches separately from the feed views.
func (s *postServiceImpl) Mine(ctx context.Context, params pagination.Params) (*models.PaginatedMyPostsResponse, error) {
	key := keyMyPosts()
	version := s.cache.Version(key)

	query := url.Values{}
	params.Apply(query)

	var page models.PaginatedMyPostsResponse
	if err := s.transport.Get(ctx, "/posts/my", query, &page); err != nil {
		return nil, err
	}

	cachePages(s.cache, key, version, params.Cursor == "", page)
	return &page, nil
}

// ByUser fetches one page of a member's posts
func (s *postServiceImpl) ByUser(ctx context.Context, userID string, params pagination.Params) (*models.PaginatedPostsResponse, error) {
	key := keyUserPosts(userID)
	version := s.cache.Version(key)

	query := url.Values{}
	params.Apply(query)

	var page models.PaginatedPostsResponse
	if err := s.transport.Get(ctx, "/users/"+userID+"/posts", query, &page); err != nil {
		return nil, err
	}

	cachePages(s.cache, key, version, params.Cursor == "", page)
	return &page, nil
}

// GetByID fetches a single post and caches the detail view
func (s *postServiceImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	key := keyPostDetail(postID)
	version := s.cache.Version(key)

	var post models.Post
	if err := s.transport.Get(ctx, "/posts/"+postID, nil, &post); err != nil {
		return nil, err
	}

	cacheItem(s.cache, key, version, &post)
	return &post, nil
}

// Create publishes a new post
func (s *postServiceImpl) Create(ctx context.Context, payload models.CreatePostPayload) (*models.Post, error) {
	if err := validation.ValidateCreatePost(payload); err != nil {
		return nil, err
	}

	var post models.Post
	if err := s.transport.Post(ctx, "/posts", payload, &post); err != nil {
		return nil, err
	}

	s.cache.Invalidate(keyPostFeed(), keyMyPosts())
	s.logger.Info().Str("postId", post.ID).Msg("Post created")
	return &post, nil
}

// Update edits an owned post
func (s *postServiceImpl) Update(ctx context.Context, postID string, payload models.UpdatePostPayload) (*models.Post, error) {
	if err := validation.ValidateUpdatePost(payload); err != nil {
		return nil, err
	}

	var post models.Post
	if err := s.transport.Patch(ctx, "/posts/"+postID, payload, &post); err != nil {
		return nil, err
	}

	s.cache.Invalidate(keyPostFeed(), keyMyPosts(), keyPostDetail(postID))
	return &post, nil
}

// Delete removes an owned post
func (s *postServiceImpl) Delete(ctx context.Context, postID string) error {
	if err := s.transport.Delete(ctx, "/posts/"+postID); err != nil {
		return err
	}

	s.cache.Invalidate(keyPostFeed(), keyMyPosts())
	s.cache.Remove(keyPostDetail(postID), keyPostComments(postID))
	return nil
}

// Like likes a post. The like flag and counter are patched synchronously
// in every cached view that contains the post; the patch is rolled back
// verbatim if the request fails.
func (s *postServiceImpl) Like(ctx context.Context, postID string) error {
	return s.setLiked(ctx, postID, true)
}

// Unlike removes a like with the same optimistic protocol as Like
func (s *postServiceImpl) Unlike(ctx context.Context, postID string) error {
	return s.setLiked(ctx, postID, false)
}

func (s *postServiceImpl) setLiked(ctx context.Context, postID string, liked bool) error {
	delta := 1
	if !liked {
		delta = -1
	}

	mutation := cache.Mutation{
		Keys: s.likeCandidateKeys(postID),
		Patch: patchCachedPost(postID, func(post *models.Post) {
			post.IsLikedByCurrentUser = liked
			post.LikeCount += delta
		}),
		Call: func(ctx context.Context) error {
			if liked {
				return s.transport.Post(ctx, "/posts/"+postID+"/like", nil, nil)
			}
			return s.transport.Delete(ctx, "/posts/"+postID+"/like")
		},
	}

	if err := cache.Mutate(ctx, s.cache, mutation); err != nil {
		s.logger.Debug().Err(err).
			Str("postId", postID).
			Bool("liked", liked).
			Msg("Optimistic like rolled back")
		return err
	}
	return nil
}

// likeCandidateKeys lists every cache entry that could contain the post:
// the global feed, the post's own detail entry and every known per-member
// post list
func (s *postServiceImpl) likeCandidateKeys(postID string) []cache.Key {
	keys := []cache.Key{keyPostFeed(), keyPostDetail(postID)}
	keys = append(keys, s.cache.KeysWithPrefix(keyUserPostsFamily())...)
	return keys
}

// Comments fetches one page of a post's comments
func (s *postServiceImpl) Comments(ctx context.Context, postID string, params pagination.Params) (*models.PaginatedCommentsResponse, error) {
	key := keyPostComments(postID)
	version := s.cache.Version(key)

	query := url.Values{}
	params.Apply(query)

	var page models.PaginatedCommentsResponse
	if err := s.transport.Get(ctx, "/posts/"+postID+"/comments", query, &page); err != nil {
		return nil, err
	}

	cachePages(s.cache, key, version, params.Cursor == "", page)
	return &page, nil
}

// CreateComment adds a comment; the post's comment counter lives in other
// views, so those are marked for refetch
func (s *postServiceImpl) CreateComment(ctx context.Context, postID string, payload models.CreateCommentPayload) (*models.Comment, error) {
	if err := validation.ValidateComment(payload.Text); err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := s.transport.Post(ctx, "/posts/"+postID+"/comments", payload, &comment); err != nil {
		return nil, err
	}

	s.cache.Invalidate(keyPostComments(postID), keyPostFeed(), keyPostDetail(postID))
	return &comment, nil
}

// UpdateComment edits an owned comment
func (s *postServiceImpl) UpdateComment(ctx context.Context, postID, commentID string, payload models.UpdateCommentPayload) (*models.Comment, error) {
	if err := validation.ValidateComment(payload.Text); err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := s.transport.Patch(ctx, "/posts/"+postID+"/comments/"+commentID, payload, &comment); err != nil {
		return nil, err
	}

	s.cache.Invalidate(keyPostComments(postID))
	return &comment, nil
}

// DeleteComment removes an owned comment
func (s *postServiceImpl) DeleteComment(ctx context.Context, postID, commentID string) error {
	if err := s.transport.Delete(ctx, "/posts/"+postID+"/comments/"+commentID); err != nil {
		return err
	}

	s.cache.Invalidate(keyPostComments(postID), keyPostFeed(), keyPostDetail(postID))
	return nil
}

// patchCachedPost builds a cache patch that applies apply to the post
// wherever it appears in a cached value. Cached values are either a page
// set of a feed-like view or a single post detail. The patch copies what
// it rewrites, leaving the original value intact as the rollback snapshot;
// views that do not contain the post are declined untouched.
func patchCachedPost(postID string, apply func(*models.Post)) cache.PatchFunc {
	return func(_ cache.Key, value any) (any, bool) {
		switch v := value.(type) {
		case []models.PaginatedPostsResponse:
			return patchPostPages(v, postID, apply)
		case *models.Post:
			if v.ID != postID {
				return nil, false
			}
			patched := *v
			apply(&patched)
			return &patched, true
		default:
			return nil, false
		}
	}
}

// patchPostPages rewrites the post inside a page set, copying only the
// slices on the path to the modified post
func patchPostPages(pages []models.PaginatedPostsResponse, postID string, apply func(*models.Post)) (any, bool) {
	found := false
	next := make([]models.PaginatedPostsResponse, len(pages))

	for i, page := range pages {
		next[i] = page
		for j, post := range page.Posts {
			if post.ID != postID {
				continue
			}

			posts := make([]models.Post, len(page.Posts))
			copy(posts, page.Posts)
			apply(&posts[j])
			next[i].Posts = posts
			found = true
			break
		}
	}

	if !found {
		return nil, false
	}
	return next, true
}
