package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for ephemeral response caching
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// DigikalaClient defines the interface for the Digikala public API
type DigikalaClient interface {
	Search(ctx context.Context, query string, page int) (*DigikalaSearchResponse, error)
	GetProduct(ctx context.Context, productID string) (*DigikalaProduct, error)
}

// TorobClient defines the interface for the Torob public API
type TorobClient interface {
	// Suggest returns a refined query for the given input, or the input
	// itself when the suggestion endpoint has nothing better.
	Suggest(ctx context.Context, query string) (string, error)
	Search(ctx context.Context, query string, page int) (*TorobSearchResponse, error)
	GetProduct(ctx context.Context, productKey string) (*TorobDetailResponse, error)
}
