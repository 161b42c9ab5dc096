/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/jdice/internal/command"
	"github.com/suderio/jdice/internal/data"
	"github.com/suderio/jdice/internal/dice"
	"github.com/suderio/jdice/internal/engine"
	"github.com/suderio/jdice/internal/notation"
	"github.com/suderio/jdice/internal/session"
)

var rollCheck string

var rollCmd = &cobra.Command{
	Use:   "roll <dice>...",
	Short: "Roll a dice string once",
	Long: `Rolls a dice string and prints every entry with the total of the roll.

	jdice roll "4d6+3 ; 2x1d20"
	jdice roll attack=1d20+5 --check "total >= 15"
	jdice roll fireball --presets party.txt`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		line := strings.Join(args, " ")

		src, err := newSource()
		if err != nil {
			fmt.Printf("Failed to seed dice: %v\n", err)
			os.Exit(1)
		}

		if err := runRoll(cmd.OutOrStdout(), line, rollCheck, viper.GetStringSlice("presets"), src); err != nil {
			if errors.Is(err, notation.ErrInvalidSyntax) {
				fmt.Printf("Invalid dice string: %s\n", line)
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

// runRoll rolls line, which may be a preset name, "name=dice" or bare notation.
func runRoll(out io.Writer, line, check string, presetFiles []string, src dice.Source) error {
	app, err := session.NewSession(presetFiles, src)
	if err != nil {
		return err
	}

	var events []engine.Event
	if preset, ok := app.Presets().Get(line); ok {
		name := preset.Name
		if name == preset.Dice {
			name = ""
		}
		events, err = command.RollList(name, preset.Dice, preset.List, check, src, app.Registry())
	} else {
		name, raw := data.SplitNamed(line)
		events, err = command.RollNotation(name, raw, check, src, app.Registry())
	}
	if err != nil {
		return err
	}

	printEvents(out, events)
	return nil
}

func printEvents(out io.Writer, events []engine.Event) {
	for _, evt := range events {
		if msg := evt.Message(); msg != "" {
			fmt.Fprintln(out, msg)
		}
	}
}

func init() {
	rootCmd.AddCommand(rollCmd)
	rollCmd.Flags().StringVarP(&rollCheck, "check", "c", "", `CEL predicate over the roll, e.g. "total >= 15"`)
}
