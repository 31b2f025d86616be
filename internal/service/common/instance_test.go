//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFindOtherInstances never reports the calling process.
func TestFindOtherInstances(t *testing.T) {
	t.Parallel()

	pids, err := FindOtherInstances(CurrentExecutable())
	require.NoError(t, err)
	require.NotContains(t, pids, os.Getpid())

	pids, err = FindOtherInstances("pinepoint-no-such-binary")
	require.NoError(t, err)
	require.Empty(t, pids)
}

// TestNormalizeExecutable strips paths and suffixes.
func TestNormalizeExecutable(t *testing.T) {
	t.Parallel()

	require.Equal(t, "pinepoint", normalizeExecutable("/usr/local/bin/pinepoint"))
	require.Equal(t, "pinepoint", normalizeExecutable("pinepoint.exe"))
}
