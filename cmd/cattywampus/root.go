package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(env *environment) *cobra.Command {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "cattywampus [flags] [path...]",
		Short: "Strip title and track metadata from MKV and MP4 files",
		Long: `cattywampus removes segment titles, track names, and MP4 title and
description atoms from media files, and can mark a subtitle track in the
preferred language as the default.

Paths may be files or folders; folders are processed recursively.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := flags.values(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return runClean(cmd.Context(), env, cli, flags.configPath())
		},
	}
	rootCmd.SetVersionTemplate("cattywampus {{.Version}}\n")
	rootCmd.SetOut(env.stdout)
	rootCmd.SetErr(env.stderr)
	flags.register(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newConfigCommand(env, flags))
	rootCmd.AddCommand(newHistoryCommand(env, flags))

	return rootCmd
}
