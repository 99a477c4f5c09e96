package veracity

import (
	"net/url"

	"github.com/tyulyukov/veracity-go/cache"
)

// Cache key families. List views cache their pages under one key per
// semantic query; detail views cache a single item. Mutations compute
// their candidate keys from these families.

func keyPostFeed() cache.Key {
	return cache.NewKey("posts", "feed")
}

func keyMyPosts() cache.Key {
	return cache.NewKey("posts", "my")
}

func keyUserPostsFamily() cache.Key {
	return cache.NewKey("posts", "user")
}

func keyUserPosts(userID string) cache.Key {
	return cache.NewKey("posts", "user", userID)
}

func keyPostDetail(postID string) cache.Key {
	return cache.NewKey("posts", "detail", postID)
}

func keyPostComments(postID string) cache.Key {
	return cache.NewKey("comments", postID)
}

func keyEvents(filter string) cache.Key {
	return cache.NewKey("events", "list", filter)
}

func keyEventDetail(eventID string) cache.Key {
	return cache.NewKey("events", "detail", eventID)
}

func keyMyEvents() cache.Key {
	return cache.NewKey("events", "mine")
}

func keyMyEventDetail(eventID string) cache.Key {
	return cache.NewKey("events", "mine", "detail", eventID)
}

func keyEventParticipants(eventID string) cache.Key {
	return cache.NewKey("events", "participants", eventID)
}

func keyUsersFamily() cache.Key {
	return cache.NewKey("users")
}

// keyUsersList derives one key per member-search query so differently
// filtered listings cache independently. The cursor is never part of the
// key.
func keyUsersList(query url.Values) cache.Key {
	return cache.NewKey("users", "list", query.Encode())
}

func keyUserDetail(userID string) cache.Key {
	return cache.NewKey("users", "detail", userID)
}

func keyConnectionsFamily() cache.Key {
	return cache.NewKey("connections")
}

func keyConnections(userID string) cache.Key {
	return cache.NewKey("connections", userID)
}

func keyPendingRequests() cache.Key {
	return cache.NewKey("pending-requests")
}

func keyInterests() cache.Key {
	return cache.NewKey("interests")
}
