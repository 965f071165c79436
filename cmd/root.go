package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgPath     string
	commandLine string

	// exitCode is the status the process exits with once cobra returns.
	exitCode int
)

func loadConfig(fsys afero.Fs, logger *log.Logger) (*config.Configuration, error) {
	configuration, err := config.Load(fsys, cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("no %s in %q, using defaults\n", config.ConfigurationName, cfgPath)
		configFs, err := config.DirFs(fsys, cfgPath)
		if err != nil {
			return nil, err
		}
		return config.Default(configFs), nil
	}

	return configuration, err
}

// shouldColor reports whether errors written to w get colored.
func shouldColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if fd, ok := w.(*os.File); ok {
		return term.IsTerminal(int(fd.Fd()))
	}
	return false
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minish",
	Short: "A minimal interactive shell",
	Long: `A minimal interactive shell that runs one command per line,
expands $(NAME) variables and provides the cd, exit, quit, set and help builtins.`,
	Args: cobra.ExactArgs(0),
	// Execute prints the error through cobra.CheckErr.
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		diag := log.New(cmd.ErrOrStderr(), "[minish] ", 0)

		configuration, err := loadConfig(afero.NewOsFs(), diag)
		if err != nil {
			return err
		}

		events := logger.NewNopLogger()
		eventLog, err := configuration.OpenEventLog()
		switch {
		case err != nil:
			return fmt.Errorf("opening event log: %w", err)
		case eventLog != nil:
			defer eventLog.Close()
			events = logger.NewJsonLinesLogRecorder(eventLog)
		}

		host := vos.NewHostOS(vos.NewStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
		sh := shell.NewShell(host, shell.Options{
			SearchPath: vos.SearchPath(configuration.SearchPath, host, configuration.DefaultPath),
			Color:      shouldColor(configuration.Color, cmd.ErrOrStderr()),
			Events:     events.NewSession(),
			Log:        diag,
		})

		if cmd.Flags().Changed("command") {
			exitCode = sh.RunLine(commandLine)
			return nil
		}

		stop := sh.HandleInterrupts()
		defer stop()
		exitCode = sh.Run()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit with its status")
}
