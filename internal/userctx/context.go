package userctx

import "context"

type contextKey string

const userEmailContextKey contextKey = "user_email"

// WithUserEmail stores the authenticated account email in the context.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailContextKey, email)
}

func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailContextKey).(string)
	return email, ok
}
