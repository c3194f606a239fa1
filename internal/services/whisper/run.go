package whisper

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
)

// runnerFunc executes a command, feeding each output line to onLine when the
// callback is non-nil. Implementations must honor context cancellation.
type runnerFunc func(ctx context.Context, onLine func(string), name string, args ...string) error

// runCommand streams combined stdout and stderr because the transcription
// tool writes segment lines to stderr while decoding.
func runCommand(ctx context.Context, onLine func(string), name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: stdout pipe: %w", name, err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: start: %w", name, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var lastLine string
	for scanner.Scan() {
		lastLine = scanner.Text()
		if onLine != nil {
			onLine(lastLine)
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if lastLine != "" {
			return fmt.Errorf("%s: %w: %s", name, err, lastLine)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
