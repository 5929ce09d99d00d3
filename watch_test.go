// Copyright (c) 2026 The appconf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package appconf_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nil-go/appconf"
	"github.com/nil-go/appconf/schema"
)

func TestWatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: first\ndb:\n  port: 1\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan config, 10)
	done := make(chan error, 1)
	go func() {
		done <- appconf.Watch(ctx, func(cfg config) { changes <- cfg }, quiet(appconf.WithFiles(path))...)
	}()
	require.Equal(t, "first", (<-changes).Name)

	// Wait for the watcher to start.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("name: second\ndb:\n  port: 2\n"), 0o600))

	timeout := time.After(5 * time.Second)
	for changed := false; !changed; {
		select {
		case cfg := <-changes:
			changed = cfg.Name == "second"
			if changed {
				require.Equal(t, 2, cfg.DB.Port)
			}
		case <-timeout:
			require.FailNow(t, "configuration change was not observed")
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_withoutFiles(t *testing.T) {
	t.Parallel()

	var values []config
	err := appconf.Watch(context.Background(), func(cfg config) { values = append(values, cfg) },
		quiet(appconf.WithArgs("--name", "x", "--db.port", "1"))...)
	require.NoError(t, err)
	require.Equal(t, []config{{Name: "x", Count: 1, Mode: "dev", DB: database{Host: "localhost", Port: 1}}}, values)
}

func TestWatch_error(t *testing.T) {
	t.Parallel()

	err := appconf.Watch(context.Background(), func(config) { require.FailNow(t, "unexpected change") }, quiet()...)
	require.ErrorIs(t, err, schema.ErrMissingRequired)
}

func TestWatch_nilContext(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		//nolint:staticcheck
		_ = appconf.Watch[config](nil, func(config) {})
	})
}
