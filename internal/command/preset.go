package command

import (
	"fmt"

	"github.com/suderio/jdice/internal/data"
	"github.com/suderio/jdice/internal/dice"
	"github.com/suderio/jdice/internal/engine"
	"github.com/suderio/jdice/internal/parser"
	"github.com/suderio/jdice/internal/rules"
)

// ExecutePreset rolls a loaded preset by name.
func ExecutePreset(cmd *parser.PresetCmd, presets *data.Presets, src dice.Source, reg *rules.Registry) ([]engine.Event, error) {
	preset, ok := presets.Get(cmd.PresetName())
	if !ok {
		return nil, fmt.Errorf("unknown preset %q; type 'presets' to list them", cmd.PresetName())
	}

	check := ""
	if cmd.Check != nil {
		check = cmd.Check.Expression
	}

	name := ""
	if preset.Name != preset.Dice {
		name = preset.Name
	}
	return RollList(name, preset.Dice, preset.List, check, src, reg)
}

// ExecutePresets lists the loaded presets.
func ExecutePresets(presets *data.Presets) []engine.Event {
	evt := &engine.PresetsListedEvent{}
	for _, p := range presets.All() {
		if p.Name == p.Dice {
			evt.Lines = append(evt.Lines, p.Dice)
			continue
		}
		evt.Lines = append(evt.Lines, fmt.Sprintf("%s = %s", p.Name, p.Dice))
	}
	return []engine.Event{evt}
}
