// Package rahasher invokes the RAHasher command line tool and interprets its
// output. RAHasher computes the RetroAchievements-specific hash for a ROM,
// which for many systems is not a plain MD5 of the file bytes.
package rahasher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"rascan/internal/services"
)

const hashLength = 32

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps RAHasher CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a RAHasher client. The binary path must already be expanded;
// callers bootstrap the tool through EnsureTool before hashing.
func New(binary string, hashTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "rahasher", "new", "hasher binary path required", nil)
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(hashTimeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Hash runs RAHasher for one ROM and returns the 32-character hex hash.
// RAHasher prints progress noise before the hash, so the candidate is the
// last non-empty line of output. Anything that is not exactly 32 characters
// is an external tool error carrying the raw candidate for the report.
func (c *Client) Hash(ctx context.Context, systemID int, path string) (string, error) {
	if path == "" {
		return "", services.Wrap(services.ErrValidation, "rahasher", "hash", "rom path required", nil)
	}

	hashCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		hashCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var lastLine string
	args := []string{strconv.Itoa(systemID), path}
	runErr := c.exec.Run(hashCtx, c.binary, args, func(line string) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lastLine = trimmed
		}
	})

	// Output shape is the sole success criterion. RAHasher's exit codes are
	// not a reliable signal across versions, so a well-formed hash is trusted
	// even when the process exits nonzero.
	candidate := strings.ToLower(lastLine)
	if len(candidate) == hashLength {
		return candidate, nil
	}
	if runErr != nil {
		return candidate, services.Wrap(services.ErrExternalTool, "rahasher", "hash",
			fmt.Sprintf("hash %q for system %d", path, systemID), runErr)
	}
	return candidate, services.Wrap(services.ErrExternalTool, "rahasher", "hash",
		fmt.Sprintf("unexpected output %q for %q", lastLine, path), nil)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader, forward func(string)) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	forward := func(line string) {
		if onStdout != nil {
			onStdout(line)
			return
		}
		fmt.Fprintln(os.Stderr, line)
	}

	wg.Add(2)
	go scan(stdout, forward)
	go scan(stderr, forward)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
