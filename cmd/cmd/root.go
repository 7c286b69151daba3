package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "f7h"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         AppName + " - F7h partition container manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		DefineHelpCommand(),
		DefineVersionCommand(),
		DefineTableBriefCommand(),
		DefineBriefCommand(),
		DefineOverrideCommand(),
		DefineResetCommand(),
		DefineClearCommand(),
		DefineLoadCommand(),
		DefineCpbootCommand(),
	)

	return rootCmd.Execute()
}
