package vos

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/afero"
)

// HostOS is the VOS backed by the real operating system.
type HostOS struct {
	VIO

	fs afero.Fs
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a VOS for the running process with the given standard
// streams.
func NewHostOS(stdio VIO) *HostOS {
	return &HostOS{
		VIO: stdio,
		fs:  afero.NewOsFs(),
	}
}

// Stat implements VFS.Stat.
func (h *HostOS) Stat(name string) (fs.FileInfo, error) {
	return h.fs.Stat(name)
}

// Getwd implements VProc.Getwd.
func (*HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements VProc.Chdir.
func (*HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// UserHomeDir implements VEnv.UserHomeDir.
func (*HostOS) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// Setenv implements VEnv.Setenv.
func (*HostOS) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// LookupEnv implements VEnv.LookupEnv.
func (*HostOS) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Getenv implements VEnv.Getenv.
func (*HostOS) Getenv(key string) string {
	return os.Getenv(key)
}

// Environ implements VEnv.Environ.
func (*HostOS) Environ() []string {
	return os.Environ()
}

// StartProcess implements VOS.StartProcess.
//
// Go has no bare fork, the child is created and its image replaced in a
// single launch. Failures of either half come back here as SpawnError or
// ExecError.
func (h *HostOS) StartProcess(path string, argv []string, attr *ProcAttr) (Process, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	files := attr.Files
	if files == nil {
		files = h.VIO
	}
	if len(argv) == 0 {
		argv = []string{path}
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    attr.Env,
		Stdin:  files.Stdin(),
		Stdout: files.Stdout(),
		Stderr: files.Stderr(),
	}
	// Non-file readers are copied by a goroutine that would otherwise keep
	// the child's stdin open until the reader is exhausted.
	if _, ok := cmd.Stdin.(*os.File); !ok {
		cmd.Stdin = nil
	}

	if err := cmd.Start(); err != nil {
		return nil, classifyStartError(path, err)
	}

	return &hostProcess{cmd: cmd}, nil
}

type hostProcess struct {
	cmd *exec.Cmd
}

func (p *hostProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *hostProcess) Wait() (ExitStatus, error) {
	err := p.cmd.Wait()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return ExitStatus{}, err
	}

	state := p.cmd.ProcessState
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Killed(ws.Signal()), nil
	}
	return Exited(state.ExitCode()), nil
}
