package bunrepo

import "github.com/goliatone/go-repository-cache/cache"

// Option configures invoker construction.
type Option func(*Options)

// Options captures optional behavior for the Bun-backed invoker.
type Options struct {
	CacheEnabled bool
	CacheConfig  *cache.Config
	IDColumn     string
}

// WithCache toggles the read-through repository cache decorator. Transact
// writes go straight to the transaction handle, so cached reads may lag
// until entries expire.
func WithCache(enabled bool) Option {
	return func(opts *Options) {
		if opts == nil {
			return
		}
		opts.CacheEnabled = enabled
	}
}

// WithCacheConfig supplies the cache configuration to use when caching is enabled.
func WithCacheConfig(cfg cache.Config) Option {
	return func(opts *Options) {
		if opts == nil {
			return
		}
		opts.CacheConfig = &cfg
	}
}

// WithIDColumn overrides the column matched by Query.ID in List. Defaults to "id".
func WithIDColumn(column string) Option {
	return func(opts *Options) {
		if opts == nil || column == "" {
			return
		}
		opts.IDColumn = column
	}
}

func applyOptions(options []Option) Options {
	opts := Options{IDColumn: "id"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return opts
}
