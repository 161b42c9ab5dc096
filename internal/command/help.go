package command

import (
	"fmt"
	"strings"

	"github.com/suderio/jdice/internal/engine"
	"github.com/suderio/jdice/internal/parser"
)

var commandSummaries = map[string]string{
	"roll":    "Rolls dice notation, e.g. 4d6+3 ; 8d12-15 ; 2x3d8 & d6+2. A bare notation line works too.",
	"preset":  "Rolls a preset by name. Quick dice d4 to d100 are always there.",
	"presets": "Lists loaded presets.",
	"total":   "Shows the cumulative total of every roll since the last clear.",
	"clear":   "Resets the cumulative total.",
	"help":    "Shows this help, or the usage of one command.",
}

// ExecuteHelp describes one command, or all of them when no topic is given.
func ExecuteHelp(cmd *parser.HelpCmd) ([]engine.Event, error) {
	topic := ""
	if cmd != nil {
		topic = strings.ToLower(cmd.Topic)
	}

	if topic != "" {
		usage, ok := parser.Usage[topic]
		if !ok {
			return nil, fmt.Errorf("no help for %q", topic)
		}
		text := fmt.Sprintf("%s\n  %s", usage, commandSummaries[topic])
		return []engine.Event{&engine.HelpRequestedEvent{Text: text}}, nil
	}

	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, name := range parser.UsageOrder {
		sb.WriteString(fmt.Sprintf("\n  %-45s %s", parser.Usage[name], commandSummaries[name]))
	}
	sb.WriteString("\nA line of the form name=notation rolls a named notation.")
	return []engine.Event{&engine.HelpRequestedEvent{Text: sb.String()}}, nil
}
