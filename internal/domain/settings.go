package domain

import "context"

// Settings persists small pieces of application state that must survive
// process restarts, such as the identifier of the signed-in account.
// CurrentAccountID returns NoAccount when nobody is signed in.
type Settings interface {
	CurrentAccountID(ctx context.Context) (int64, error)
	SetCurrentAccountID(ctx context.Context, id int64) error
}
