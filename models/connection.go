package models

// ConnectionStatus represents the state of a connection request. The
// server keeps at most one outstanding request per ordered user pair;
// approval makes the relationship symmetric.
type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusApproved ConnectionStatus = "approved"
	ConnectionStatusIgnored  ConnectionStatus = "ignored"
)

// Connection is a directed request between two users
type Connection struct {
	RequesterUserID string           `json:"requesterUserId"`
	TargetUserID    string           `json:"targetUserId"`
	Status          ConnectionStatus `json:"status"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
	WasAutoApproved bool             `json:"wasAutoApproved"`
}

// ConnectionResponseAction is the decision on an incoming request
type ConnectionResponseAction string

const (
	ConnectionApprove ConnectionResponseAction = "approved"
	ConnectionIgnore  ConnectionResponseAction = "ignored"
)

// RespondToConnectionPayload is the request body for
// PATCH /connections/:id/respond
type RespondToConnectionPayload struct {
	Response ConnectionResponseAction `json:"response" validate:"required,oneof=approved ignored"`
}
