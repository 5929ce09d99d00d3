// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package tags

// WithNameTag provides the struct tag which holds element names and options.
//
// The default tag is `conf`.
func WithNameTag(tag string) Option {
	return func(options *options) {
		options.nameTag = tag
	}
}

// WithHelpTag provides the struct tag which holds element descriptions.
//
// The default tag is `help`.
func WithHelpTag(tag string) Option {
	return func(options *options) {
		options.helpTag = tag
	}
}

// WithDefaultTag provides the struct tag which holds default values.
//
// The default tag is `default`.
func WithDefaultTag(tag string) Option {
	return func(options *options) {
		options.defaultTag = tag
	}
}

type (
	// Option configures a Tags with specific options.
	Option  func(*options)
	options Tags
)
