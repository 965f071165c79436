package cmd

import (
	"fmt"

	"github.com/josephlewis42/minish/core/shell"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range shell.BuiltinNames() {
			usage, _ := shell.BuiltinUsage(name)
			fmt.Fprintln(cmd.OutOrStdout(), usage)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
