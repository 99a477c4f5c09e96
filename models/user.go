package models

// UserStatus represents the membership status of an account. Accounts are
// created pending and transition to active upon approval.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBanned   UserStatus = "banned"
)

// UserRole represents the platform role of an account
type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleSpeaker UserRole = "speaker"
	RoleAdmin   UserRole = "admin"
	RoleOwner   UserRole = "owner"
)

// User is the authenticated user's own profile as returned by /users/me
type User struct {
	ID               string      `json:"id"`
	Email            string      `json:"email"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	AvatarURL        *string     `json:"avatarUrl"`
	Position         *string     `json:"position"`
	ContactInfo      ContactInfo `json:"contactInfo,omitempty"`
	ShortDescription *string     `json:"shortDescription"`
	Status           UserStatus  `json:"status"`
	Role             UserRole    `json:"role"`
	CreatedAt        string      `json:"createdAt"`
	LastActivityAt   *string     `json:"lastActivityAt"`
	Interests        []Interest  `json:"interests"`
	TotalConnections int         `json:"totalConnections"`
}

// OtherUser is a member as seen by another member in listings
type OtherUser struct {
	ID                 string     `json:"id"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	AvatarURL          *string    `json:"avatarUrl"`
	Position           *string    `json:"position"`
	ShortDescription   *string    `json:"shortDescription"`
	Status             UserStatus `json:"status"`
	Role               UserRole   `json:"role"`
	CreatedAt          string     `json:"createdAt"`
	LastActivityAt     *string    `json:"lastActivityAt"`
	Interests          []Interest `json:"interests"`
	IsConnected        bool       `json:"isConnected"`
	HasOutgoingRequest bool       `json:"hasOutgoingRequest"`
	HasIncomingRequest bool       `json:"hasIncomingRequest"`
}

// OtherUserDetail is the full member profile view
type OtherUserDetail struct {
	OtherUser
	ContactInfo      ContactInfo `json:"contactInfo,omitempty"`
	TotalConnections int         `json:"totalConnections"`
}

// ConnectedUser is a member in a connections listing, annotated with when
// the connection was established
type ConnectedUser struct {
	OtherUser
	ConnectionCreatedAt string `json:"connectionCreatedAt"`
}

// RegisterPayload is the request body for POST /users/auth/register
type RegisterPayload struct {
	Email            string      `json:"email" validate:"required,email"`
	Password         string      `json:"password" validate:"required,min=8"`
	FirstName        string      `json:"firstName" validate:"required,min=2,max=100"`
	LastName         string      `json:"lastName" validate:"required,min=2,max=100"`
	AvatarURL        string      `json:"avatarUrl,omitempty"`
	Position         string      `json:"position,omitempty"`
	ContactInfo      ContactInfo `json:"contactInfo,omitempty"`
	InterestIDs      []string    `json:"interestIds" validate:"required,min=1"`
	ShortDescription string      `json:"shortDescription,omitempty"`
}

// LoginPayload is the request body for POST /users/auth/login
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfilePayload is the request body for PATCH /users/me. Nil fields
// are omitted and left unchanged by the server.
type UpdateProfilePayload struct {
	FirstName        *string     `json:"firstName,omitempty" validate:"omitempty,min=2,max=100"`
	LastName         *string     `json:"lastName,omitempty" validate:"omitempty,min=2,max=100"`
	AvatarURL        *string     `json:"avatarUrl,omitempty"`
	Position         *string     `json:"position,omitempty"`
	ContactInfo      ContactInfo `json:"contactInfo,omitempty"`
	ShortDescription *string     `json:"shortDescription,omitempty"`
	InterestIDs      []string    `json:"interestIds,omitempty"`
}

// ConnectionFilter narrows a member search by connection state
type ConnectionFilter string

const (
	ConnectionFilterAll              ConnectionFilter = "all"
	ConnectionFilterSentRequests     ConnectionFilter = "sent_requests"
	ConnectionFilterReceivedRequests ConnectionFilter = "received_requests"
	ConnectionFilterConnected        ConnectionFilter = "connected"
)

// UsersQuery carries the member-search filters applied on top of the
// shared cursor pagination parameters
type UsersQuery struct {
	InterestIDs      []string
	Search           string
	Position         string
	ConnectionFilter ConnectionFilter
}

// PaginatedUsersResponse is one page of the members listing
type PaginatedUsersResponse struct {
	Users      []OtherUser `json:"users"`
	NextCursor *string     `json:"nextCursor"`
}

// PaginatedConnectionsResponse is one page of a user's connections
type PaginatedConnectionsResponse struct {
	Users      []ConnectedUser `json:"users"`
	NextCursor *string         `json:"nextCursor"`
}
