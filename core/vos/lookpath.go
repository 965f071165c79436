package vos

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is the search path used when neither configuration nor the
// environment supply one.
const DefaultPath = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"

func exists(vfs VFS, name string) bool {
	_, err := vfs.Stat(name)
	return err == nil
}

// LookPath resolves file to a path that exists on vfs. It tries file itself,
// then file relative to the current directory, then each directory of
// searchPath in order. If nothing exists, file is returned unchanged so the
// launch reports the failure.
//
// Only existence is checked, permissions are left for exec to enforce.
func LookPath(vfs VFS, file string, searchPath []string) string {
	if file == "" {
		return file
	}
	if exists(vfs, file) {
		return file
	}
	if local := "./" + file; exists(vfs, local) {
		return local
	}
	for _, dir := range searchPath {
		path := filepath.Join(dir, file)
		if exists(vfs, path) {
			return path
		}
	}
	return file
}

// SplitPath splits a PATH style list. Empty elements mean the current
// directory, following Unix shell semantics.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	var out []string
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		out = append(out, dir)
	}
	return out
}

// SearchPath picks the directories used to resolve commands: the configured
// list when set, otherwise $PATH, otherwise fallback.
func SearchPath(configured []string, env VEnv, fallback string) []string {
	if len(configured) > 0 {
		return configured
	}
	if dirs := SplitPath(env.Getenv("PATH")); len(dirs) > 0 {
		return dirs
	}
	if fallback == "" {
		fallback = DefaultPath
	}
	return SplitPath(fallback)
}

// PathListString renders dirs in PATH form, used for display.
func PathListString(dirs []string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}
