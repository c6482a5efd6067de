package internal

import "context"

type ctxKey string

const ContextUserKey ctxKey = "user"

// SessionUser is the minimal identity handed to handlers via request
// context. Role is never stored here; it is resolved per request from
// the email and the project being accessed.
type SessionUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(ContextUserKey).(*SessionUser)
	return user, ok
}

func ContextWithUser(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}
