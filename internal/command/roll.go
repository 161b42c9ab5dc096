package command

import (
	"errors"
	"fmt"

	"github.com/suderio/jdice/internal/dice"
	"github.com/suderio/jdice/internal/engine"
	"github.com/suderio/jdice/internal/notation"
	"github.com/suderio/jdice/internal/parser"
	"github.com/suderio/jdice/internal/rules"
)

// ExecuteRoll parses the notation of a roll command and rolls it.
func ExecuteRoll(roll *parser.RollCmd, src dice.Source, reg *rules.Registry) ([]engine.Event, error) {
	name := ""
	if roll.Name != nil {
		name = roll.Name.Name
	}
	check := ""
	if roll.Check != nil {
		check = roll.Check.Expression
	}
	return RollNotation(name, roll.Dice.Notation(), check, src, reg)
}

// RollNotation parses raw notation and rolls it. Invalid syntax produces no events.
func RollNotation(name, raw, check string, src dice.Source, reg *rules.Registry) ([]engine.Event, error) {
	list, err := notation.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid dice string %q: %w", raw, err)
	}
	return RollList(name, raw, list, check, src, reg)
}

// RollList rolls an already parsed list. Entries that cannot be rolled are
// reported inside the DiceRolledEvent; only a failing check aborts.
func RollList(name, raw string, list dice.List, check string, src dice.Source, reg *rules.Registry) ([]engine.Event, error) {
	out := list.Roll(src)
	events := []engine.Event{engine.NewDiceRolledEvent(name, raw, out)}

	if check == "" {
		return events, nil
	}
	if reg == nil {
		return nil, errors.New("checks are not available in this session")
	}

	passed, err := reg.Check(check, out.Combined())
	if err != nil {
		return nil, err
	}
	events = append(events, &engine.CheckResolvedEvent{
		Expression: check,
		Total:      out.Total(),
		Passed:     passed,
	})
	return events, nil
}
