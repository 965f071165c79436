// Package vostest provides a deterministic in-memory VOS for tests.
package vostest

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"syscall"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
)

// Proc is the view a fake program gets of its own process.
type Proc struct {
	Argv []string
	Env  []string
	Dir  string
	vos.VIO
}

// ProcessFunc is a fake program. It returns how the "process" terminated.
type ProcessFunc func(p *Proc) vos.ExitStatus

// Exit returns a ProcessFunc that writes out to stdout and exits with code.
func Exit(code int, out string) ProcessFunc {
	return func(p *Proc) vos.ExitStatus {
		io.WriteString(p.Stdout(), out)
		return vos.Exited(code)
	}
}

// Spawn records a single StartProcess call.
type Spawn struct {
	Path string
	Argv []string
	Env  []string
	Dir  string
}

// TestOS is an in-memory VOS. Programs are registered Go functions keyed by
// absolute path, the filesystem is an afero.MemMapFs.
type TestOS struct {
	vos.VIO
	*vos.MapEnv

	Fs       afero.Fs
	Programs map[string]ProcessFunc
	Spawned  []Spawn

	// StartErr, if set, is returned by every StartProcess call.
	StartErr error

	cwd string
}

var _ vos.VOS = (*TestOS)(nil)

// NewTestOS creates a TestOS rooted at / with HOME=/root and
// PATH=/bin:/usr/bin. Output is captured in stdout and stderr.
func NewTestOS(stdin io.Reader, stdout, stderr io.Writer) *TestOS {
	t := &TestOS{
		VIO:      vos.NewStdio(stdin, stdout, stderr),
		MapEnv:   vos.NewMapEnvFromEnvList([]string{"HOME=/root", "PATH=/bin:/usr/bin"}),
		Fs:       afero.NewMemMapFs(),
		Programs: make(map[string]ProcessFunc),
		cwd:      "/",
	}
	for _, dir := range []string{"/root", "/bin", "/usr/bin", "/tmp"} {
		t.Mkdir(dir)
	}
	return t
}

// NewBufferedTestOS creates a TestOS reading input and capturing output in
// the returned buffers.
func NewBufferedTestOS(input string) (tos *TestOS, stdout, stderr *bytes.Buffer) {
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	return NewTestOS(bytes.NewBufferString(input), stdout, stderr), stdout, stderr
}

func (t *TestOS) abs(name string) string {
	if path.IsAbs(name) {
		return path.Clean(name)
	}
	return path.Join(t.cwd, name)
}

// Mkdir creates dir and its parents.
func (t *TestOS) Mkdir(dir string) {
	if err := t.Fs.MkdirAll(t.abs(dir), 0755); err != nil {
		panic(err)
	}
}

// AddProgram installs fn as an executable at name.
func (t *TestOS) AddProgram(name string, fn ProcessFunc) {
	name = t.abs(name)
	t.Mkdir(path.Dir(name))
	if err := afero.WriteFile(t.Fs, name, nil, 0755); err != nil {
		panic(err)
	}
	t.Programs[name] = fn
}

// AddFile creates a plain, non-runnable file at name.
func (t *TestOS) AddFile(name string) {
	name = t.abs(name)
	t.Mkdir(path.Dir(name))
	if err := afero.WriteFile(t.Fs, name, nil, 0644); err != nil {
		panic(err)
	}
}

// Stat implements vos.VFS.Stat.
func (t *TestOS) Stat(name string) (fs.FileInfo, error) {
	return t.Fs.Stat(t.abs(name))
}

// Getwd implements vos.VProc.Getwd.
func (t *TestOS) Getwd() (string, error) {
	return t.cwd, nil
}

// Chdir implements vos.VProc.Chdir.
func (t *TestOS) Chdir(dir string) error {
	target := t.abs(dir)
	info, err := t.Fs.Stat(target)
	switch {
	case err != nil:
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
	case !info.IsDir():
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}
	t.cwd = target
	return nil
}

// StartProcess implements vos.VOS.StartProcess.
func (t *TestOS) StartProcess(name string, argv []string, attr *vos.ProcAttr) (vos.Process, error) {
	if attr == nil {
		attr = &vos.ProcAttr{}
	}
	t.Spawned = append(t.Spawned, Spawn{
		Path: name,
		Argv: append([]string(nil), argv...),
		Env:  append([]string(nil), attr.Env...),
		Dir:  t.cwd,
	})

	if t.StartErr != nil {
		return nil, t.StartErr
	}

	target := t.abs(name)
	info, err := t.Fs.Stat(target)
	if err != nil {
		return nil, &vos.ExecError{Name: name, Err: syscall.ENOENT}
	}
	program, ok := t.Programs[target]
	if !ok || info.IsDir() {
		return nil, &vos.ExecError{Name: name, Err: syscall.EACCES}
	}

	files := attr.Files
	if files == nil {
		files = t.VIO
	}

	return &testProcess{
		pid:     len(t.Spawned) + 1,
		program: program,
		proc:    &Proc{Argv: argv, Env: attr.Env, Dir: t.cwd, VIO: files},
	}, nil
}

type testProcess struct {
	pid     int
	program ProcessFunc
	proc    *Proc
}

func (p *testProcess) Pid() int {
	return p.pid
}

// Wait runs the program to completion on the caller's goroutine.
func (p *testProcess) Wait() (vos.ExitStatus, error) {
	return p.program(p.proc), nil
}
