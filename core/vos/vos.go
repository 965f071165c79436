package vos

import (
	"io/fs"
)

// VFS is the part of the filesystem the shell needs to resolve commands.
type VFS interface {
	// Stat returns a FileInfo describing the named file, relative paths are
	// resolved against the current working directory.
	Stat(name string) (fs.FileInfo, error)
}

// VProc holds the per-process state the shell can observe and change.
type VProc interface {
	// Getwd returns an absolute path to the current directory.
	Getwd() (string, error)

	// Chdir changes the current working directory.
	Chdir(dir string) error
}

// VOS provides a virtual OS interface.
type VOS interface {
	VEnv
	VIO
	VFS
	VProc

	// StartProcess launches the executable at path with the given argv and
	// attributes, a nil attr is treated as an empty ProcAttr. The returned
	// Process must be waited on.
	StartProcess(path string, argv []string, attr *ProcAttr) (Process, error)
}
