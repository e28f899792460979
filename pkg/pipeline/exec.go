package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"os/exec"
	"syscall"
)

// Process describes one subprocess invocation.
type Process struct {
	Name   string
	Args   []string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Executor starts a process and waits for it.
//
// A process that ran and exited, with any code or by a signal, reports its
// Status and a nil error. A non-nil error means the process could not be
// started or waited for.
type Executor interface {
	Execute(ctx context.Context, p Process) (Status, error)
}

// ExecExecutor runs processes with os/exec. Cancelling ctx kills the child.
type ExecExecutor struct{}

// Execute implements Executor.
func (ExecExecutor) Execute(ctx context.Context, p Process) (Status, error) {
	cmd := exec.CommandContext(ctx, p.Name, p.Args...)
	cmd.Env = p.Env
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	err := cmd.Run()
	if err == nil {
		return Status{}, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return statusOf(exitErr), nil
	}
	return Status{Code: -1}, err
}

func statusOf(e *exec.ExitError) Status {
	if ws, ok := e.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		sig := ws.Signal()
		return Status{Code: 128 + int(sig), Signaled: true, Signal: sig.String()}
	}
	return Status{Code: e.ExitCode()}
}
