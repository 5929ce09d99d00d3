// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/nil-go/appconf/internal/maps"
	"github.com/nil-go/appconf/schema"
)

// Extensions returns the supported file extensions.
func Extensions() []string {
	return []string{".ini", ".json", ".yaml", ".yml"}
}

//nolint:gochecknoglobals
var loaders = map[string]func(string) (map[string]any, error){
	".ini":  loadINI,
	".json": loadJSON,
	".yaml": loadYAML,
	".yml":  loadYAML,
}

func loadJSON(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(content))
	// Keep integers exact, they are parsed by the element type.
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return asMapping(out)
}

func loadYAML(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var out any
	if err := yaml.Unmarshal(content, &out); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return asMapping(out)
}

func loadINI(path string) (map[string]any, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load ini: %w", err)
	}

	out := make(map[string]any)
	for _, section := range file.Sections() {
		var key schema.Key
		if name := section.Name(); name != ini.DefaultSection {
			key = schema.ParseKey(name)
		}
		for _, k := range section.Keys() {
			maps.Insert(out, key.Child(k.Name()), k.Value())
		}
	}

	return out, nil
}

func asMapping(out any) (map[string]any, error) {
	switch out := out.(type) {
	case nil:
		// Empty document.
		return map[string]any{}, nil
	case map[string]any:
		return out, nil
	default:
		return nil, fmt.Errorf("%w: the file doesn't represent a mapping", schema.ErrStructuralMismatch)
	}
}

func supported(ext string) bool {
	_, ok := loaders[strings.ToLower(ext)]

	return ok
}
