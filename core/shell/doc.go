// Package shell implements a minimal interactive command interpreter.
//
// Each line goes through the same steps:
//
//  1. $(NAME) references are replaced with the values of shell variables.
//  2. The line is split into words on whitespace, the first word names the
//     command.
//  3. Builtins (cd, exit, quit, help, set) run inside the shell.
//  4. Anything else is resolved against the current directory and the search
//     path, started as a child process with the shell's environment, and
//     waited for.
//
// Errors are written to stderr and never stop the shell, only exit, quit
// and end of input do.
package shell
