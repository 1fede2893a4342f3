// Package system talks to the host: console mode, battery, network and power.
package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/rook-computer/inkpoint/internal/logging"
)

// Runner executes host commands.
type Runner interface {
	Run(ctx context.Context, cmd string, args ...string) (stdout, stderr string, err error)
}

// NoopRunner logs instead of executing. The simulator uses it.
type NoopRunner struct {
	Logger logging.Logger
}

func (n NoopRunner) Run(_ context.Context, cmd string, args ...string) (string, string, error) {
	logging.OrNop(n.Logger).Infof("system", "skipping %s %v", cmd, args)
	return "", "", nil
}

// ShellRunner executes commands, optionally through sudo.
type ShellRunner struct {
	Sudo bool
}

func (s ShellRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	name := cmd
	if s.Sudo {
		args = append([]string{cmd}, args...)
		name = "sudo"
	}
	c := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	c.Stdout = &outBuf
	c.Stderr = &errBuf
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return outBuf.String(), errBuf.String(), fmt.Errorf("exit %d: %w", exitErr.ExitCode(), err)
		}
		return outBuf.String(), errBuf.String(), err
	}
	return outBuf.String(), errBuf.String(), nil
}

// PowerOff asks the init system to shut the device down.
func PowerOff(ctx context.Context, r Runner) error {
	_, stderr, err := r.Run(ctx, "systemctl", "poweroff")
	if err != nil {
		return fmt.Errorf("poweroff failed: %v: %s", err, stderr)
	}
	return nil
}
