// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf

import "io"

// SetExit replaces the exit function and the error output of MustGather,
// and returns the function restoring them.
func SetExit(fn func(int), out io.Writer) func() {
	oldExit, oldOut := exit, stderr
	exit, stderr = fn, out

	return func() {
		exit, stderr = oldExit, oldOut
	}
}

// ResetGlobal removes the published global configuration.
func ResetGlobal() {
	global.mu.Lock()
	defer global.mu.Unlock()

	global.value, global.published = nil, false
}
