//go:build unix

/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestWriteLinesLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "router.db")
	require.NoError(t, os.WriteFile(path, []byte("held:by:up\n"), 0o644))

	holder, err := os.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() { _ = holder.Close() })

	require.NoError(t, unix.Flock(int(holder.Fd()), unix.LOCK_EX))

	err = writeLines(path, RouterDBFileMode, false, []string{"new:line:up\n"})
	require.ErrorIs(t, err, ErrDestinationLocked)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "held:by:up\n", string(data))
}
