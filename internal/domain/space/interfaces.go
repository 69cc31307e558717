package space

import "context"

// Repository provides persistence for spaces.
type Repository interface {
	Create(ctx context.Context, sp *Space) error
	Get(ctx context.Context, id string) (*Space, error)
	Update(ctx context.Context, sp *Space) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Space, error)
	FindByTag(ctx context.Context, tagID string) (*Space, error)
}

// SettingRepository persists small key/value settings, such as the id of
// the currently selected space.
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
