// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package file reads configuration values from files.
//
// The format is selected by the file extension: `.json`, `.yaml`/`.yml` or `.ini`.
// The content must be a mapping, and entries which do not name elements of the schema are ignored.
// For INI files, keys outside of sections are top-level entries and every section is a nested mapping.
//
// The special entry `_include` holds a path or a list of paths of files
// which are read before the file itself, so values of the file override the included ones.
// Relative paths are resolved against the directory of the including file.
// `_include` may also appear in the mapping of a nested element, where it
// applies to that element only:
//
//	_include: base.yaml
//	db:
//	  _include: db.yaml
//	  host: localhost
package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nil-go/appconf/provider/mapping"
	"github.com/nil-go/appconf/schema"
)

var (
	// ErrFileNotFound is returned if a configuration file does not exist.
	ErrFileNotFound = errors.New("configuration file not found")
	// ErrUnsupportedFormat is returned if the file extension is not a supported format.
	ErrUnsupportedFormat = errors.New("unsupported configuration file format")
	// ErrIncludeCycle is returned if a file includes itself, directly or indirectly.
	ErrIncludeCycle = errors.New("include cycle")
)

const includeKey = "_include"

// File is a value source of a configuration file and the files it includes.
//
// To create a new File, call [New].
type File struct {
	logger *slog.Logger
	path   string
	opened func(string)
}

// New creates a File with the given path and Option(s).
//
// It panics if the path is empty.
func New(path string, opts ...Option) File {
	if path == "" {
		panic("cannot create File with empty path")
	}

	option := &options{
		path: path,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("appconf.file")

	return File(*option)
}

// Read returns the values of the file and the files it includes,
// where later values override earlier ones with the same name.
// Values are tagged with the provenance ("file", <file>, <included file>, ...).
func (f File) Read(s *schema.Schema) ([]schema.Value, error) {
	return f.read(s, f.path, []string{"file"}, nil)
}

func (f File) read(s *schema.Schema, path string, provenance, chain []string) ([]schema.Value, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", path, err)
	}
	load, ok := loaders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s must have an extension from %v", ErrUnsupportedFormat, path, Extensions())
	}
	if slices.Contains(chain, path) {
		return nil, fmt.Errorf("%w: %s > %s", ErrIncludeCycle, strings.Join(chain, " > "), path)
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f.logger.LogAttrs(context.Background(), slog.LevelDebug, "Start reading config file.", slog.String("file", path))
	data, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if f.opened != nil {
		f.opened(path)
	}

	provenance = append(slices.Clone(provenance), path)
	chain = append(slices.Clone(chain), path)
	values, err := f.include(s, nil, data, filepath.Dir(path), provenance, chain)
	if err != nil {
		return nil, err
	}
	own, err := mapping.New(data, provenance...).Read(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.logger.LogAttrs(context.Background(), slog.LevelDebug, "End reading config file.", slog.String("file", path))

	return append(values, own...), nil
}

// include reads the files included by data for schema s, nested elements first.
// The names of returned values are relative to s, and key is the path of s for error messages.
func (f File) include(
	s *schema.Schema, key schema.Key, data map[string]any, dir string, provenance, chain []string,
) ([]schema.Value, error) {
	var values []schema.Value
	for _, field := range s.Fields() {
		nested, ok := field.Element.Type.(*schema.Schema)
		if !ok {
			continue
		}
		raw, ok := data[field.Name]
		if !ok {
			continue
		}
		sub, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a mapping", schema.ErrStructuralMismatch, key.Child(field.Name))
		}

		nestedValues, err := f.include(nested, key.Child(field.Name), sub, dir, provenance, chain)
		if err != nil {
			return nil, err
		}
		for _, value := range nestedValues {
			value.Name = append(schema.Key{field.Name}, value.Name...)
			values = append(values, value)
		}
	}

	raw, ok := data[includeKey]
	if !ok {
		return values, nil
	}
	f.logger.LogAttrs(context.Background(), slog.LevelDebug, "Processing includes.",
		slog.String("key", key.Child(includeKey).String()), slog.Any("include", raw))

	var paths []string
	switch include := raw.(type) {
	case string:
		paths = []string{include}
	case []any:
		for _, item := range include {
			path, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s must be a string or a list of strings",
					schema.ErrStructuralMismatch, key.Child(includeKey))
			}
			paths = append(paths, path)
		}
	default:
		return nil, fmt.Errorf("%w: %s must be a string or a list of strings",
			schema.ErrStructuralMismatch, key.Child(includeKey))
	}

	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		included, err := f.read(s, path, provenance, chain)
		if err != nil {
			return nil, err
		}
		values = append(values, included...)
	}

	return values, nil
}

func (f File) String() string {
	return "file:" + f.path
}
