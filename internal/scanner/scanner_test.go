package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"rascan/internal/scanner"
)

func TestPlatformDirsSkipsFilesAndDotDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"snes", "gba", ".hidden"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	dirs, err := scanner.PlatformDirs(root)
	if err != nil {
		t.Fatalf("PlatformDirs: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 dirs, got %d", len(dirs))
	}
	// os.ReadDir sorts lexically.
	if dirs[0].Name != "gba" || dirs[1].Name != "snes" {
		t.Fatalf("unexpected order: %v", dirs)
	}
	if dirs[1].Path != filepath.Join(root, "snes") {
		t.Fatalf("unexpected path %q", dirs[1].Path)
	}
}

func TestPlatformDirsMissingRoot(t *testing.T) {
	t.Parallel()

	if _, err := scanner.PlatformDirs(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestRomsSkipsDirsAndDotfiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.sfc", "a.sfc", ".DS_Store"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("rom"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	roms, err := scanner.Roms(dir)
	if err != nil {
		t.Fatalf("Roms: %v", err)
	}
	if len(roms) != 2 {
		t.Fatalf("expected 2 roms, got %d", len(roms))
	}
	if roms[0].Name != "a.sfc" || roms[1].Name != "b.sfc" {
		t.Fatalf("unexpected order: %v", roms)
	}
}

func TestRomsEmptyDir(t *testing.T) {
	t.Parallel()

	roms, err := scanner.Roms(t.TempDir())
	if err != nil {
		t.Fatalf("Roms: %v", err)
	}
	if len(roms) != 0 {
		t.Fatalf("expected no roms, got %d", len(roms))
	}
}
