// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

// Merge recursively merges the src map into the dst map.
// Key conflicts are resolved by preferring src,
// or recursively descending, if both values from src and dst are map.
// Maps from src are copied, so later changes of dst do not modify src.
func Merge(dst, src map[string]any) {
	for key, srcVal := range src {
		srcMap, srcOk := srcVal.(map[string]any)
		if !srcOk {
			dst[key] = srcVal

			continue
		}

		dstMap, dstOk := dst[key].(map[string]any)
		if !dstOk {
			dstMap = make(map[string]any, len(srcMap))
			dst[key] = dstMap
		}
		Merge(dstMap, srcMap)
	}
}
