package gate

import "context"

// Policy decides whether user may perform action on target.
// For list and create the target is nil.
type Policy[U any] interface {
	Can(ctx context.Context, user U, action Action, target any) bool
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc[U any] func(ctx context.Context, user U, action Action, target any) bool

func (f PolicyFunc[U]) Can(ctx context.Context, user U, action Action, target any) bool {
	return f(ctx, user, action, target)
}
