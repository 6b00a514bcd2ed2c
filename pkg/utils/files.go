// Package utils holds small filesystem helpers shared by the command-line
// driver: path resolution and output-artifact naming.
package utils

import (
	"path/filepath"
	"strings"
)

// GetPathInfo resolves relPath to an absolute path and returns it alongside
// its containing directory.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// OutputBase strips a known source suffix (e.g. ".as") from fullPath so the
// caller can append each output artifact's own suffix (.am, .ob, .ent,
// .ext) alongside the source file.
func OutputBase(fullPath, sourceSuffix string) string {
	return strings.TrimSuffix(fullPath, sourceSuffix)
}
