package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telgren/codeview/internal/syntax"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available highlighting themes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range syntax.AvailableThemes() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List available highlighting languages",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range syntax.AvailableLanguages() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(languagesCmd)
}
