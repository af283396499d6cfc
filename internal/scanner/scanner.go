// Package scanner lists platform folders and ROM files under the library root.
// Listings are lexically ordered so repeated runs over an unchanged library
// produce identical reports.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is an immediate subdirectory of the library root, assumed to hold the
// ROMs of a single platform.
type Dir struct {
	Name string
	Path string
}

// Rom is a single candidate ROM file.
type Rom struct {
	Name string
	Path string
}

// PlatformDirs returns the immediate subdirectories of root in lexical order.
// Regular files directly under the root are ignored.
func PlatformDirs(root string) ([]Dir, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read library root %q: %w", root, err)
	}

	dirs := make([]Dir, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, Dir{
			Name: entry.Name(),
			Path: filepath.Join(root, entry.Name()),
		})
	}
	return dirs, nil
}

// Roms returns the regular files directly under dir in lexical order.
// Dotfiles and nested directories are skipped; archives and multi-disc
// layouts are the hasher's problem, not the scanner's.
func Roms(dir string) ([]Rom, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read platform folder %q: %w", dir, err)
	}

	roms := make([]Rom, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		roms = append(roms, Rom{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	return roms, nil
}
