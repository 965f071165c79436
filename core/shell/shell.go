package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
)

const (
	// PromptSuffix follows the working directory in the prompt.
	PromptSuffix = " > "

	errorPrefix = "minish: "
)

// Options configures a Shell.
type Options struct {
	// SearchPath holds the directories searched for commands.
	SearchPath []string

	// Color enables ANSI coloring of error messages.
	Color bool

	// Events receives session events, nil disables event logging.
	Events *logger.SessionLogger

	// Log receives internal diagnostics, nil discards them.
	Log *log.Logger
}

type Shell struct {
	VirtualOS vos.VOS

	// Variables is the shell's variable store, only the set builtin writes
	// to it.
	Variables *vos.MapEnv

	SearchPath []string

	// Set to true to quit the shell
	Quit bool

	events   *logger.SessionLogger
	log      *log.Logger
	errColor *color.Color
	lastRet  int

	// atPrompt is set while the shell is blocked reading a line.
	atPrompt atomic.Bool
}

// NewShell creates a shell running on virtualOS with an empty variable
// store.
func NewShell(virtualOS vos.VOS, opts Options) *Shell {
	s := &Shell{
		VirtualOS:  virtualOS,
		Variables:  vos.NewMapEnv(),
		SearchPath: opts.SearchPath,
		events:     opts.Events,
		log:        opts.Log,
		errColor:   color.New(color.FgRed),
	}

	if s.events == nil {
		s.events = logger.NewNopLogger().Sessionless()
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	if opts.Color {
		s.errColor.EnableColor()
	} else {
		s.errColor.DisableColor()
	}

	return s
}

// LastStatus returns the status of the most recent command.
func (s *Shell) LastStatus() int {
	return s.lastRet
}

func (s *Shell) prompt() string {
	pwd, err := s.VirtualOS.Getwd()
	if err != nil {
		pwd = "?"
	}
	return pwd + PromptSuffix
}

func (s *Shell) printPrompt() {
	fmt.Fprint(s.VirtualOS.Stdout(), s.prompt())
}

func (s *Shell) record(event logger.LogType) {
	if err := s.events.Record(event); err != nil {
		s.log.Printf("recording event: %v", err)
	}
}

// errorf reports a message to stderr.
func (s *Shell) errorf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintln(s.VirtualOS.Stderr(), s.errColor.Sprint(msg))
}

// reportError reports a shell level error caused by line.
func (s *Shell) reportError(line string, err error) {
	s.errorf("%s%v", errorPrefix, err)
	s.record(&logger.Error{Line: line, Message: err.Error()})
}

// Run reads and executes lines until end of input or exit. It returns the
// shell's exit code.
func (s *Shell) Run() int {
	in := bufio.NewReader(s.VirtualOS.Stdin())

	wd, _ := s.VirtualOS.Getwd()
	s.record(&logger.SessionStart{Dir: wd, SearchPath: vos.PathListString(s.SearchPath)})

	for !s.Quit {
		s.printPrompt()
		line, err := s.readLine(in)

		switch {
		case errors.Is(err, io.EOF) && line == "":
			// Input closed, quit.
			fmt.Fprintln(s.VirtualOS.Stdout())
			fmt.Fprintln(s.VirtualOS.Stdout(), "exit")
			s.record(&logger.SessionEnd{Reason: "eof"})
			return 0

		case err != nil && !errors.Is(err, io.EOF):
			s.reportError(line, fmt.Errorf("reading input: %w", err))
			s.record(&logger.SessionEnd{Reason: "error"})
			return 1
		}

		s.RunLine(strings.TrimRight(line, "\r\n"))
	}

	s.record(&logger.SessionEnd{Reason: "exit"})
	return 0
}

func (s *Shell) readLine(in *bufio.Reader) (string, error) {
	s.atPrompt.Store(true)
	defer s.atPrompt.Store(false)

	return in.ReadString('\n')
}

// RunLine expands, parses and executes a single line. It returns the status
// of the command, blank lines leave the status unchanged.
func (s *Shell) RunLine(line string) int {
	expanded, errs := Expand(line, s.Variables)
	for _, err := range errs {
		s.reportError(line, err)
	}

	args := Tokenize(expanded)
	if len(args) == 0 {
		return s.lastRet
	}

	if builtin, ok := AllBuiltins[args[0]]; ok {
		s.lastRet = builtin.Main(s, args)
		s.record(&logger.Builtin{Argv: args, Status: s.lastRet})
		return s.lastRet
	}

	s.lastRet = s.executeProgram(line, args)
	return s.lastRet
}
