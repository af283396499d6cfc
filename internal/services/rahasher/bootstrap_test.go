package rahasher_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rascan/internal/logging"
	"rascan/internal/services/rahasher"
)

func buildArchive(t *testing.T, memberName string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(memberName)
	if err != nil {
		t.Fatalf("create archive member: %v", err)
	}
	if _, err := w.Write([]byte("#!/bin/sh\necho hashtool\n")); err != nil {
		t.Fatalf("write archive member: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func TestEnsureToolDownloadsAndInstalls(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, "RAHasher-x64-Linux/RAHasher")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "tools", "RAHasher")
	boot := rahasher.NewBootstrap(path, srv.URL, time.Minute, logging.NewNop())

	if err := boot.EnsureTool(context.Background()); err != nil {
		t.Fatalf("EnsureTool: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat installed binary: %v", err)
	}
	if info.Mode()&0o111 == 0 {
		t.Fatalf("installed binary is not executable: %v", info.Mode())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestEnsureToolSkipsExistingBinary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "RAHasher")
	if err := os.WriteFile(path, []byte("existing"), 0o755); err != nil {
		t.Fatalf("seed binary: %v", err)
	}

	// No server: any download attempt would fail.
	boot := rahasher.NewBootstrap(path, "http://127.0.0.1:1/nope.zip", time.Second, logging.NewNop())
	if err := boot.EnsureTool(context.Background()); err != nil {
		t.Fatalf("EnsureTool: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read binary: %v", err)
	}
	if string(data) != "existing" {
		t.Fatalf("existing binary was replaced")
	}
}

func TestEnsureToolRejectsArchiveWithoutBinary(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, "README.txt")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "RAHasher")
	boot := rahasher.NewBootstrap(path, srv.URL, time.Minute, logging.NewNop())
	if err := boot.EnsureTool(context.Background()); err == nil {
		t.Fatal("expected error for archive without binary")
	}
}
