// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Optional returns a list with the path if it is an existing file, or an empty list otherwise.
//
// It helps to build the list of configuration files:
//
//	appconf.WithFiles(file.Optional("config.yaml")...)
func Optional(path string) []string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return []string{path}
	}

	return nil
}

// InParents returns the files with the given name in base and all its parent directories,
// starting from the root, so files closer to base override the ones closer to the root.
//
// If base is empty, it starts from the directory of the executable.
func InParents(name, base string) []string {
	if base == "" {
		base = executableDir()
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return Optional(filepath.Join(base, name))
	}

	var files []string
	for dir := base; ; {
		files = append(Optional(filepath.Join(dir, name)), files...)

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return files
}

// ScriptConfig returns a list with the configuration file named after the executable,
// in the directory of the executable, e.g. `/opt/app/server.yaml` for `/opt/app/server`.
//
// If ext is empty, it tries all supported extensions (see [Extensions]) and returns the first existing file.
// It returns an empty list if the file does not exist.
func ScriptConfig(ext string) ([]string, error) {
	if ext != "" && !supported(ext) {
		return nil, fmt.Errorf("%w: extension %s must be one of %v", ErrUnsupportedFormat, ext, Extensions())
	}

	executable, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("identify executable: %w", err)
	}
	stem := strings.TrimSuffix(executable, filepath.Ext(executable))

	if ext != "" {
		return Optional(stem + ext), nil
	}
	for _, ext := range Extensions() {
		if files := Optional(stem + ext); len(files) > 0 {
			return files, nil
		}
	}

	return nil, nil
}

func executableDir() string {
	executable, err := os.Executable()
	if err != nil {
		return "."
	}

	return filepath.Dir(executable)
}
