//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// FindOtherInstances returns the PIDs of other processes running the given executable.
// The ".exe" suffix is ignored so names match across platforms.
func FindOtherInstances(executable string) ([]int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var (
		thisProcessID = os.Getpid()
		want          = normalizeExecutable(executable)
		result        []int
	)

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if normalizeExecutable(process.Executable()) != want {
			continue
		}

		result = append(result, process.Pid())
	}

	return result, nil
}

// CurrentExecutable returns the base name of the running binary.
func CurrentExecutable() string {
	path, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}

	return filepath.Base(path)
}

// normalizeExecutable strips the Windows suffix and, on Windows, folds case.
func normalizeExecutable(name string) string {
	name = filepath.Base(name)

	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		name = strings.ToLower(name)
	}

	return strings.TrimSuffix(name, ".exe")
}
