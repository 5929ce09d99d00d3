// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

// Sub returns the value at the nested path in values.
// The second result is false if any key is absent or an intermediate value is not a map.
func Sub(values map[string]any, path []string) (any, bool) {
	if len(path) == 0 {
		return values, values != nil
	}

	value, ok := values[path[0]]
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return value, true
	}

	if mp, ok := value.(map[string]any); ok {
		return Sub(mp, path[1:])
	}

	return nil, false
}
