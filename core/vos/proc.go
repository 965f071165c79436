package vos

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// ProcAttr holds the attributes that will be applied to a new process
// started by StartProcess.
type ProcAttr struct {
	// Env specifies the environment of the process, each entry is of the form
	// "key=value".
	Env []string

	// Files holds the standard streams of the new process.
	Files VIO
}

// Process is a started child. Wait blocks until that specific child exits.
type Process interface {
	Pid() int
	Wait() (ExitStatus, error)
}

// ExitStatus describes how a child terminated.
type ExitStatus struct {
	// Code is the exit code for clean exits, -1 when Signaled.
	Code int
	// Signaled is set if the child was killed by Signal.
	Signaled bool
	Signal   syscall.Signal
}

// Exited returns an ExitStatus for a clean exit with code.
func Exited(code int) ExitStatus {
	return ExitStatus{Code: code}
}

// Killed returns an ExitStatus for a child terminated by sig.
func Killed(sig syscall.Signal) ExitStatus {
	return ExitStatus{Code: -1, Signaled: true, Signal: sig}
}

// Success reports whether the child exited cleanly with status 0.
func (e ExitStatus) Success() bool {
	return !e.Signaled && e.Code == 0
}

// ShellCode is the status a shell reports for the child, signals map to
// 128+n.
func (e ExitStatus) ShellCode() int {
	if e.Signaled {
		return 128 + int(e.Signal)
	}
	return e.Code
}

func (e ExitStatus) String() string {
	switch {
	case e.Signaled:
		name := unix.SignalName(e.Signal)
		if name == "" {
			name = fmt.Sprintf("%d", int(e.Signal))
		}
		return fmt.Sprintf("killed by signal %s", name)
	default:
		return fmt.Sprintf("exit status %d", e.Code)
	}
}

// SpawnError is returned when a child process could not be created at all,
// typically from resource exhaustion.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("fork failed: %v", e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ExecError is returned when the child could not replace its image with the
// named executable.
type ExecError struct {
	Name string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// classifyStartError maps an error from launching name onto SpawnError or
// ExecError.
func classifyStartError(name string, err error) error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return &ExecError{Name: name, Err: err}
	}

	switch errno {
	case syscall.EAGAIN, syscall.ENOMEM, syscall.ENFILE, syscall.EMFILE:
		return &SpawnError{Err: errno}
	default:
		return &ExecError{Name: name, Err: errno}
	}
}
