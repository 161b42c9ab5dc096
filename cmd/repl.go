/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/jdice/internal/session"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL shell",
	Long: `Starts the read-eval-print loop for rolling dice with a running total.
Usage:
	> 4d6+3 ; 2x1d8
	> roll as: Attack 1d20+5 check: "total >= 15"
	> fireball=8d6
	> preset d20
	> total`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		src, err := newSource()
		if err != nil {
			fmt.Printf("Failed to seed dice: %v\n", err)
			os.Exit(1)
		}

		presetFiles := viper.GetStringSlice("presets")
		app, err := session.NewSession(presetFiles, src)
		if err != nil {
			fmt.Printf("Failed to start dice session: %v\n", err)
			os.Exit(1)
		}

		stopBot := maybeStartBot(app)
		err = RunTUI(app)
		stopBot()
		if err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
