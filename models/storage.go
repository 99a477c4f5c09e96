package models

// StorageEntity is the entity type owning an uploaded file
type StorageEntity string

const (
	StorageEntityUsers  StorageEntity = "users"
	StorageEntityEvents StorageEntity = "events"
	StorageEntityPosts  StorageEntity = "posts"
)

// StorageField is the destination field of an uploaded file
type StorageField string

const (
	StorageFieldAvatar     StorageField = "avatar"
	StorageFieldEventImage StorageField = "event_image"
	StorageFieldPostImage  StorageField = "post_image"
)
