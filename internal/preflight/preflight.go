// Package preflight validates the environment before a scan starts: the
// library is readable, the output directory is writable, the hasher tool is
// installed, and the RetroAchievements credential is accepted.
package preflight

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"rascan/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CredentialChecker validates the configured API key against the live API.
type CredentialChecker interface {
	ValidateCredential(ctx context.Context) bool
}

// ToolEnsurer installs the hasher binary when it is missing.
type ToolEnsurer interface {
	EnsureTool(ctx context.Context) error
}

// RunAll executes every preflight check. Checks run unconditionally; the
// scan refuses to start unless all of them pass.
func RunAll(ctx context.Context, cfg *config.Config, credential CredentialChecker, tool ToolEnsurer) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryRead("Library root", cfg.Paths.LibraryDir))
	results = append(results, CheckDirectoryWrite("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckHasherTool(ctx, cfg, tool))
	results = append(results, CheckCredential(ctx, credential))
	results = append(results, CheckPlatformTable(cfg))
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return len(results) > 0
}

// CheckDirectoryRead verifies the directory exists and is readable. The
// library root is never created on the user's behalf.
func CheckDirectoryRead(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDirectoryWrite verifies the directory exists (creating it if needed)
// and is writable.
func CheckDirectoryWrite(name, path string) Result {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: create: %v)", path, err)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckHasherTool makes sure the RAHasher binary is installed, downloading it
// on first use.
func CheckHasherTool(ctx context.Context, cfg *config.Config, tool ToolEnsurer) Result {
	const name = "RAHasher tool"
	if tool == nil {
		return Result{Name: name, Detail: "no tool bootstrap configured"}
	}
	if err := tool.EnsureTool(ctx); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: cfg.Hasher.BinaryPath}
}

// CheckCredential verifies the RetroAchievements API key is accepted.
func CheckCredential(ctx context.Context, credential CredentialChecker) Result {
	const name = "RetroAchievements API"
	if credential == nil {
		return Result{Name: name, Detail: "no credential configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if !credential.ValidateCredential(checkCtx) {
		return Result{Name: name, Detail: "credential rejected (check RA_API_KEY or retroachievements.api_key)"}
	}
	return Result{Name: name, Passed: true, Detail: "credential accepted"}
}

// CheckPlatformTable verifies at least one platform definition is configured.
func CheckPlatformTable(cfg *config.Config) Result {
	const name = "Platform definitions"
	if len(cfg.Platforms) == 0 {
		return Result{Name: name, Detail: "no platform definitions configured"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d definitions", len(cfg.Platforms))}
}
