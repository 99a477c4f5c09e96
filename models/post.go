package models

// MaxPostImages is the upper bound on images attached to a single post
const MaxPostImages = 4

// PostAuthor is the author summary embedded in posts and comments
type PostAuthor struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	AvatarURL *string  `json:"avatarUrl"`
	Role      UserRole `json:"role"`
}

// Post is a feed post with its author and the viewer's like state
type Post struct {
	ID                   string     `json:"id"`
	Text                 string     `json:"text"`
	ImageURLs            []string   `json:"imageUrls"`
	LikeCount            int        `json:"likeCount"`
	CommentCount         int        `json:"commentCount"`
	IsLikedByCurrentUser bool       `json:"isLikedByCurrentUser"`
	CreatedAt            string     `json:"createdAt"`
	Author               PostAuthor `json:"author"`
}

// MyPost is the caller's own post as returned by the "my posts" listing.
// The shape intentionally omits the author (it is always the caller) and
// the like flag, and carries the update timestamp instead.
type MyPost struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	ImageURLs    []string `json:"imageUrls"`
	LikeCount    int      `json:"likeCount"`
	CommentCount int      `json:"commentCount"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// Comment belongs to a post and an author
type Comment struct {
	ID        string     `json:"id"`
	PostID    string     `json:"postId"`
	Text      string     `json:"text"`
	CreatedAt string     `json:"createdAt"`
	Author    PostAuthor `json:"author"`
}

// CreatePostPayload is the request body for POST /posts. A post must carry
// non-empty text or at least one image.
type CreatePostPayload struct {
	Text      string   `json:"text,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty" validate:"omitempty,max=4"`
}

// UpdatePostPayload is the request body for PATCH /posts/:id
type UpdatePostPayload struct {
	Text      *string  `json:"text,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty" validate:"omitempty,max=4"`
}

// CreateCommentPayload is the request body for POST /posts/:id/comments
type CreateCommentPayload struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// UpdateCommentPayload is the request body for
// PATCH /posts/:id/comments/:commentId
type UpdateCommentPayload struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// PaginatedPostsResponse is one page of the feed or a member's posts
type PaginatedPostsResponse struct {
	Posts      []Post  `json:"posts"`
	NextCursor *string `json:"nextCursor"`
}

// PaginatedMyPostsResponse is one page of the caller's own posts
type PaginatedMyPostsResponse struct {
	Posts      []MyPost `json:"posts"`
	NextCursor *string  `json:"nextCursor"`
}

// PaginatedCommentsResponse is one page of a post's comments
type PaginatedCommentsResponse struct {
	Comments   []Comment `json:"comments"`
	NextCursor *string   `json:"nextCursor"`
}
