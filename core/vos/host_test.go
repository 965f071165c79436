package vos

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "GO_WANT_HELPER_PROCESS"

// TestHelperProcess isn't a real test, the host tests re-run the test binary
// with it as a stand-in for external programs.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		os.Exit(2)
	}

	switch args[1] {
	case "exit":
		code, _ := strconv.Atoi(args[2])
		os.Exit(code)
	case "kill":
		syscall.Kill(os.Getpid(), syscall.SIGKILL)
		select {}
	case "argv0":
		fmt.Print(os.Args[0])
	case "getenv":
		fmt.Print(os.Getenv(args[2]))
	}
	os.Exit(0)
}

func startHelper(t *testing.T, out *bytes.Buffer, argv0 string, args ...string) Process {
	t.Helper()

	argv := append([]string{argv0, "-test.run=TestHelperProcess", "--"}, args...)
	host := NewHostOS(NewNullIO())
	proc, err := host.StartProcess(os.Args[0], argv, &ProcAttr{
		Env:   append(os.Environ(), helperEnv+"=1", "MINISH_TEST=passed-through"),
		Files: NewStdio(nil, out, out),
	})
	require.NoError(t, err)
	return proc
}

func TestHostOS_StartProcess(t *testing.T) {
	cases := map[string]struct {
		args       []string
		wantStatus ExitStatus
		wantOut    string
	}{
		"success":     {[]string{"exit", "0"}, Exited(0), ""},
		"exit-7":      {[]string{"exit", "7"}, Exited(7), ""},
		"signal":      {[]string{"kill"}, Killed(syscall.SIGKILL), ""},
		"env":         {[]string{"getenv", "MINISH_TEST"}, Exited(0), "passed-through"},
		"argv0-given": {[]string{"argv0"}, Exited(0), "resolved-name"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out := &bytes.Buffer{}
			proc := startHelper(t, out, "resolved-name", tc.args...)
			assert.NotZero(t, proc.Pid())

			status, err := proc.Wait()
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantOut, out.String())
		})
	}
}

func TestHostOS_StartProcessExecError(t *testing.T) {
	host := NewHostOS(NewNullIO())

	t.Run("missing", func(t *testing.T) {
		missing := t.TempDir() + "/does-not-exist"
		_, err := host.StartProcess(missing, []string{missing}, &ProcAttr{})

		var execErr *ExecError
		require.True(t, errors.As(err, &execErr), "got %T", err)
		assert.Equal(t, missing, execErr.Name)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("nil-attr", func(t *testing.T) {
		missing := t.TempDir() + "/does-not-exist"
		_, err := host.StartProcess(missing, nil, nil)

		var execErr *ExecError
		require.True(t, errors.As(err, &execErr), "got %T", err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("directory", func(t *testing.T) {
		dir := t.TempDir()
		_, err := host.StartProcess(dir, []string{dir}, &ProcAttr{})

		var execErr *ExecError
		require.True(t, errors.As(err, &execErr), "got %T", err)
		assert.True(t, errors.Is(err, fs.ErrPermission))
	})
}

func TestClassifyStartError(t *testing.T) {
	pathErr := &fs.PathError{Op: "fork/exec", Path: "/bin/x", Err: syscall.EAGAIN}
	var spawnErr *SpawnError
	assert.True(t, errors.As(classifyStartError("/bin/x", pathErr), &spawnErr))

	pathErr.Err = syscall.ENOEXEC
	var execErr *ExecError
	assert.True(t, errors.As(classifyStartError("/bin/x", pathErr), &execErr))
	assert.Equal(t, "/bin/x: exec format error", execErr.Error())
}

func TestExitStatus_String(t *testing.T) {
	assert.Equal(t, "exit status 7", Exited(7).String())
	assert.Equal(t, "killed by signal SIGKILL", Killed(syscall.SIGKILL).String())
	assert.Equal(t, 137, Killed(syscall.SIGKILL).ShellCode())
	assert.True(t, Exited(0).Success())
	assert.False(t, Exited(1).Success())
}
