package spatial

import "github.com/rs/zerolog"

// DefaultCacheSize is the number of regions an Octree caches by default.
const DefaultCacheSize = 4096

// Options configures a spatial Octree.
type Options struct {
	Logger zerolog.Logger

	// CacheSize bounds the id to region cache. Zero disables caching.
	CacheSize int64
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Logger:    zerolog.Nop(),
		CacheSize: DefaultCacheSize,
	}
}

// WithLogger sets the logger used by the octree and its region lookups.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithCacheSize sets how many regions are cached.
func WithCacheSize(n int64) Option {
	return func(o *Options) { o.CacheSize = n }
}
