package session

import (
	"context"
	"net/http"
)

// Manager is an interface that abstracts the session management implementation.
// This allows for easier testing and dependency injection. The concrete
// implementation is scs.SessionManager backed by the primary database.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	PopString(ctx context.Context, key string) string
	RenewToken(ctx context.Context) error
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
}
