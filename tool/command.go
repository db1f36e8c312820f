package tool

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds the wait for output pipes after the process is killed,
// since children of a killed shell may keep them open.
const waitDelay = time.Second

// Command runs an external program, feeding input on stdin.
type Command struct {
	// Name identifies the tool in errors.
	Name string
	Path string
	Args []string

	// Timeout bounds a single run. Zero means no limit besides the
	// context.
	Timeout time.Duration

	// Combined reads stderr together with stdout, for programs that print
	// their payload and their progress messages interleaved.
	Combined bool
}

// Run runs the command and returns its output.
func (c *Command) Run(ctx context.Context, input string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if c.Combined {
		cmd.Stderr = &stdout
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", &Failure{Tool: c.name(), Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	return stdout.String(), nil
}

func (c *Command) name() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Path
}
