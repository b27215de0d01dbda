package credstore

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// DefaultDir is where credentials live when no path is configured.
const DefaultDir = "~/.minipost"

// ResolvePath expands a leading "~" in path. An empty path resolves to the
// given file name inside DefaultDir.
func ResolvePath(path, name string) (string, error) {
	if path == "" {
		path = filepath.Join(DefaultDir, name)
	}
	return homedir.Expand(path)
}
