package rahasher

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rascan/internal/logging"
	"rascan/internal/services"
)

// Bootstrap downloads the RAHasher release archive and installs the binary
// when it is not already present on disk.
type Bootstrap struct {
	path        string
	downloadURL string
	client      *http.Client
	logger      *slog.Logger
}

// NewBootstrap builds a bootstrapper for the given install path. The path
// must already be expanded.
func NewBootstrap(path, downloadURL string, timeout time.Duration, logger *slog.Logger) *Bootstrap {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Bootstrap{
		path:        strings.TrimSpace(path),
		downloadURL: strings.TrimSpace(downloadURL),
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// EnsureTool makes sure the RAHasher binary exists and is executable,
// downloading and unpacking the release archive on first use. The install is
// atomic: the binary lands under a temp name and is renamed into place.
func (b *Bootstrap) EnsureTool(ctx context.Context) error {
	if b.path == "" {
		return services.Wrap(services.ErrConfiguration, "rahasher", "ensure-tool", "hasher binary path is empty", nil)
	}

	if info, err := os.Stat(b.path); err == nil {
		if info.Mode()&0o111 == 0 {
			if err := os.Chmod(b.path, 0o755); err != nil {
				return services.Wrap(services.ErrConfiguration, "rahasher", "ensure-tool", "make hasher executable", err)
			}
		}
		return nil
	}

	if b.downloadURL == "" {
		return services.Wrap(services.ErrConfiguration, "rahasher", "ensure-tool",
			fmt.Sprintf("hasher missing at %s and no download URL configured", b.path), nil)
	}

	b.logger.Info("downloading RAHasher",
		logging.String("url", b.downloadURL),
		logging.String("path", b.path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.downloadURL, nil)
	if err != nil {
		return services.Wrap(services.ErrTransient, "rahasher", "ensure-tool", "build download request", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "rahasher", "ensure-tool", "download hasher archive", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrTransient, "rahasher", "ensure-tool",
			fmt.Sprintf("download hasher archive: unexpected status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrTransient, "rahasher", "ensure-tool", "read hasher archive", err)
	}

	binary, err := extractBinary(data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "rahasher", "ensure-tool", "create tool directory", err)
	}

	tempPath := b.path + ".tmp"
	if err := os.WriteFile(tempPath, binary, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "rahasher", "ensure-tool", "write hasher temp file", err)
	}
	if err := os.Rename(tempPath, b.path); err != nil {
		os.Remove(tempPath)
		return services.Wrap(services.ErrConfiguration, "rahasher", "ensure-tool", "install hasher binary", err)
	}

	b.logger.Info("RAHasher installed",
		logging.String("path", b.path),
		logging.Int("bytes", len(binary)))
	return nil
}

// extractBinary pulls the RAHasher executable out of the release zip. The
// archive layout has shifted between releases, so any member whose base name
// is RAHasher (with or without .exe) is accepted.
func extractBinary(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "rahasher", "ensure-tool", "open hasher archive", err)
	}

	for _, file := range zr.File {
		base := filepath.Base(file.Name)
		if !strings.EqualFold(base, "RAHasher") && !strings.EqualFold(base, "RAHasher.exe") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "rahasher", "ensure-tool", "open archive member", err)
		}
		binary, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "rahasher", "ensure-tool", "read archive member", err)
		}
		return binary, nil
	}

	return nil, services.Wrap(services.ErrExternalTool, "rahasher", "ensure-tool", "archive has no RAHasher binary", nil)
}
