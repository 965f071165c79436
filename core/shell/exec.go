package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
	"golang.org/x/sys/unix"
)

// Conventional statuses for commands that never ran.
const (
	StatusSpawnFailed   = 1
	StatusNotExecutable = 126
	StatusNotFound      = 127
)

// executeProgram resolves args[0], runs it with the shell's environment and
// waits for it to finish.
func (s *Shell) executeProgram(line string, args []string) int {
	path := vos.LookPath(s.VirtualOS, args[0], s.SearchPath)

	argv := make([]string, 0, len(args))
	argv = append(argv, path)
	argv = append(argv, args[1:]...)

	start := time.Now()
	proc, err := s.VirtualOS.StartProcess(path, argv, &vos.ProcAttr{
		Env:   s.VirtualOS.Environ(),
		Files: s.VirtualOS,
	})
	if err != nil {
		s.reportError(line, err)
		return startErrorStatus(err)
	}

	status, err := proc.Wait()
	if err != nil {
		s.reportError(line, fmt.Errorf("%s: %w", args[0], err))
		return StatusSpawnFailed
	}

	event := &logger.Command{
		Argv:         args,
		ResolvedPath: path,
		Pid:          proc.Pid(),
		ExitCode:     status.Code,
		DurationMs:   time.Since(start).Milliseconds(),
	}
	if status.Signaled {
		event.Signal = unix.SignalName(status.Signal)
	}
	s.record(event)

	if !status.Success() {
		s.reportError(line, fmt.Errorf("%s: %s", args[0], status))
	}
	return status.ShellCode()
}

func startErrorStatus(err error) int {
	var spawnErr *vos.SpawnError
	switch {
	case errors.As(err, &spawnErr):
		return StatusSpawnFailed
	case errors.Is(err, fs.ErrNotExist):
		return StatusNotFound
	default:
		return StatusNotExecutable
	}
}
