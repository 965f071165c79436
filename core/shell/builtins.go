package shell

import (
	"fmt"
	"io"
	"sort"

	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// builtinDocs holds the help text of each builtin, keyed like AllBuiltins.
var builtinDocs = make(map[string]builtinDoc)

type builtinDoc struct {
	Use   string
	Short string
}

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

func addBuiltin(name, use, short string, fn ShellBuiltinFunc) {
	AllBuiltins[name] = fn
	builtinDocs[name] = builtinDoc{Use: use, Short: short}
}

// BuiltinNames returns the names of all builtins in sorted order.
func BuiltinNames() []string {
	var names []string
	for k := range AllBuiltins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// BuiltinUsage returns the one line usage of the named builtin.
func BuiltinUsage(name string) (string, bool) {
	doc, ok := builtinDocs[name]
	return doc.Use, ok
}

// Cd is the cd shell builtin, with no arguments it changes to $HOME.
func Cd(s *Shell, args []string) int {
	switch len(args) {
	case 1:
		home, err := s.VirtualOS.UserHomeDir()
		if err != nil {
			s.errorf("%s: %v", args[0], err)
			return 1
		}
		args = append(args, home)
		fallthrough
	case 2:
		if err := s.VirtualOS.Chdir(args[1]); err != nil {
			s.errorf("%s: %v", args[0], err)
			return 1
		}
	default:
		s.errorf("%s: too many arguments", args[0])
		return 1
	}
	return 0
}

// Exit quits the shell
func Exit(s *Shell, args []string) int {
	fmt.Fprintln(s.VirtualOS.Stdout(), "exit")
	s.Quit = true
	return 0
}

// Set stores a shell variable, it takes exactly a name and a value.
func Set(s *Shell, args []string) int {
	if len(args) != 3 {
		s.errorf("%s: invalid command, usage: %s", args[0], builtinDocs["set"].Use)
		return 1
	}

	// Ignore error, it will never be set for MapEnv.
	_ = s.Variables.Setenv(args[1], args[2])
	return 0
}

func Help(s *Shell, args []string) int {
	opts := getopt.New()
	opts.SetProgram(args[0])
	opts.SetParameters("[NAME...]")
	synopsis := opts.Bool('s', "output only a short usage synopsis for each NAME")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.VirtualOS.Stderr()
		if err != nil {
			s.errorf("%s: %v", args[0], err)
		}
		opts.PrintUsage(w)
		if err != nil {
			return 1
		}
		return 0
	}

	w := s.VirtualOS.Stdout()
	names := opts.Args()
	if len(names) == 0 {
		if !*synopsis {
			printHelpHeader(w)
		}
		names = BuiltinNames()
	}

	ret := 0
	for _, name := range names {
		doc, ok := builtinDocs[name]
		switch {
		case !ok:
			s.errorf("%s: no help topics match `%s'", args[0], name)
			ret = 1
		case *synopsis:
			fmt.Fprintf(w, "%s: %s\n", name, doc.Use)
		default:
			fmt.Fprintf(w, "%s: %s\n    %s\n", name, doc.Use, doc.Short)
		}
	}

	return ret
}

func printHelpHeader(w io.Writer) {
	fmt.Fprintln(w, "minish, a minimal command shell.")
	fmt.Fprintln(w, "These shell commands are defined internally. Type `help NAME' to find out more about NAME.")
	fmt.Fprintln(w, "Other commands are looked up in the current directory and the search path.")
	fmt.Fprintln(w, "Use $(NAME) anywhere in a line to insert the value of a variable set with `set'.")
	fmt.Fprintln(w)
}

func init() {
	addBuiltin("cd", "cd [DIR]", "Change the working directory to DIR, or $HOME if DIR is omitted.", Cd)
	addBuiltin("exit", "exit", "Exit the shell with status 0.", Exit)
	addBuiltin("quit", "quit", "Exit the shell with status 0.", Exit)
	addBuiltin("set", "set NAME VALUE", "Set the shell variable NAME to VALUE.", Set)
	addBuiltin("help", "help [-s] [NAME...]", "Display information about builtin commands.", Help)
}
