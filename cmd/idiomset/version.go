package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/idiomset/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "idiomset", app.BuildVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
