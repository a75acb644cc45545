package cache

import "context"

// Revalidator drops cached responses under a path. It never fails the caller.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

type NopRevalidator struct{}

func (NopRevalidator) Revalidate(context.Context, string) {}
