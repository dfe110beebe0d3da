// Package nordvpn drives the external NordVPN command-line client.
// This file contains the Runner abstraction for executing the client
// binary and capturing its console output.
package nordvpn

import (
	"fmt"
	"os/exec"
	"strings"

	"nordvpn-indicator/common"
)

// Runner executes one invocation of the external client and returns its
// combined console output. Implementations other than ExecRunner exist
// only in tests.
type Runner interface {
	Run(args ...string) (string, error)
}

// ExecRunner runs the real client binary with os/exec.
type ExecRunner struct {
	command string
}

// NewExecRunner creates a runner for the given client command.
// An empty command falls back to the default client binary.
func NewExecRunner(command string) *ExecRunner {
	if command == "" {
		command = common.DefaultClientCommand
	}
	return &ExecRunner{command: command}
}

// Run invokes the client, blocks until it exits, and returns the
// combined stdout/stderr with surrounding whitespace trimmed. The
// client prints warnings on stderr and still exits non-zero for some
// recoverable conditions, so the captured text is returned even when
// err is non-nil. No timeout is enforced; a hung client blocks the
// caller until it exits.
func (r *ExecRunner) Run(args ...string) (string, error) {
	cmd := exec.Command(r.command, args...)
	output, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(output))
	if err != nil {
		return text, fmt.Errorf("%w: %s %s: %v",
			common.ErrCommandFailed, r.command, strings.Join(args, " "), err)
	}
	return text, nil
}

// ClientInstalled reports whether the client command can be found in
// the system PATH.
func ClientInstalled(command string) bool {
	if command == "" {
		command = common.DefaultClientCommand
	}
	_, err := exec.LookPath(command)
	return err == nil
}
