package domain

import "context"

// ScreeningRepository resolves screening keys against catalog reference
// data. The allocator consults it before committing and fails closed when
// a key cannot be confirmed.
type ScreeningRepository interface {
	Exists(ctx context.Context, key ScreeningKey) (bool, error)
}
