package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/suderio/jdice/internal/command"
	"github.com/suderio/jdice/internal/data"
	"github.com/suderio/jdice/internal/dice"
	"github.com/suderio/jdice/internal/engine"
	"github.com/suderio/jdice/internal/rules"
	"github.com/suderio/jdice/internal/session"
)

var (
	batchRepeat int
	batchQuiet  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Roll every line of a file",
	Long: `Rolls each line of a file, one dice string per line, either bare or as
name=dice. Blank lines and lines starting with '#' are skipped. The cumulative
total of all rolls is printed at the end.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := newSource()
		if err != nil {
			fmt.Printf("Failed to seed dice: %v\n", err)
			os.Exit(1)
		}

		var bar io.Writer = io.Discard
		if !batchQuiet {
			bar = os.Stderr
		}
		if err := runBatch(cmd.OutOrStdout(), bar, args[0], batchRepeat, src); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// runBatch rolls every candidate of path repeat times and prints the reports
// followed by the cumulative total.
func runBatch(out, progress io.Writer, path string, repeat int, src dice.Source) error {
	if repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", repeat)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	candidates, err := data.ReadLines(path, f)
	if err != nil {
		return err
	}

	app, err := session.NewSession(nil, src)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(candidates)*repeat,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Rolling"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var events []engine.Event
	for i := 0; i < repeat; i++ {
		for _, c := range candidates {
			evts, err := rollCandidate(c, src, app.Registry())
			if err != nil {
				return err
			}
			events = append(events, evts...)
			_ = bar.Add(1)
		}
	}
	_ = bar.Finish()

	printEvents(out, events)

	tally, err := engine.NewProjector().Build(events)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, (&engine.TallyShownEvent{Cumulative: tally.Cumulative}).Message())
	return nil
}

func rollCandidate(c data.Preset, src dice.Source, reg *rules.Registry) ([]engine.Event, error) {
	name := c.Name
	if name == c.Dice {
		name = ""
	}
	return command.RollList(name, c.Dice, c.List, "", src, reg)
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVarP(&batchRepeat, "repeat", "r", 1, "roll the whole file this many times")
	batchCmd.Flags().BoolVarP(&batchQuiet, "quiet", "q", false, "hide the progress bar")
}
