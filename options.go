package svo

import "github.com/rs/zerolog"

// Options configures an Octree.
type Options struct {
	Logger zerolog.Logger
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used to report failed operations.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
