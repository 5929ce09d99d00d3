// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

// Insert sets value at the nested path keys in dst, creating intermediate maps.
// Intermediate values that are not map[string]any are replaced.
// It does nothing if keys is empty.
func Insert(dst map[string]any, keys []string, value any) {
	if len(keys) == 0 {
		return
	}

	next := dst
	for _, key := range keys[:len(keys)-1] {
		sub, ok := next[key].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			next[key] = sub
		}
		next = sub
	}
	next[keys[len(keys)-1]] = value
}
