package shell

import (
	"fmt"
	"os"
	"os/signal"
)

// HandleInterrupts keeps interrupts from killing the shell. While the shell
// waits for input an interrupt redraws the prompt on a fresh line; while a
// child runs it is ignored here, the child receives it from the terminal.
//
// Call the returned function to restore the default behavior.
func (s *Shell) HandleInterrupts() (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigs:
				s.onInterrupt()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// onInterrupt only writes to stdout, it must not touch shell state.
func (s *Shell) onInterrupt() {
	if !s.atPrompt.Load() {
		return
	}
	fmt.Fprintln(s.VirtualOS.Stdout())
	s.printPrompt()
}
