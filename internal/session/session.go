package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"

	"github.com/suderio/jdice/internal/command"
	"github.com/suderio/jdice/internal/data"
	"github.com/suderio/jdice/internal/dice"
	"github.com/suderio/jdice/internal/engine"
	"github.com/suderio/jdice/internal/notation"
	"github.com/suderio/jdice/internal/parser"
	"github.com/suderio/jdice/internal/rules"
)

// Session manages the cohesive loop of taking commands, executing them, recording events, and projecting the Tally.
// It is safe for concurrent use, so a chat bot and a terminal can share one.
type Session struct {
	mu       sync.Mutex
	parser   *participle.Parser[parser.Command]
	presets  *data.Presets
	src      dice.Source
	registry *rules.Registry
	state    *engine.Tally
	events   []engine.Event
}

// NewSession bootstraps a session with presets read from presetFiles and dice drawn from src.
func NewSession(presetFiles []string, src dice.Source) (*Session, error) {
	presets, err := data.NewLoader(presetFiles).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	// Bridge rules.Registry to the notation parser and src
	reg, err := rules.NewRegistry(func(s string) (int, error) {
		list, err := notation.Parse(s)
		if err != nil {
			return 0, err
		}
		out := list.Roll(src)
		if err := out.Err(); err != nil {
			return 0, err
		}
		return out.Total(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rules registry: %w", err)
	}

	return &Session{
		parser:   parser.Build(),
		presets:  presets,
		src:      src,
		registry: reg,
		state:    engine.NewTally(),
	}, nil
}

// State returns a copy of the current Tally
func (s *Session) State() engine.Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := *s.state
	st.History = append([]string(nil), s.state.History...)
	return st
}

// Presets returns the presets loaded for this session
func (s *Session) Presets() *data.Presets {
	return s.presets
}

// Registry returns the CEL registry bound to this session's dice
func (s *Session) Registry() *rules.Registry {
	return s.registry
}

// Events returns every event recorded so far
func (s *Session) Events() []engine.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.Event(nil), s.events...)
}

// Execute takes a raw command string from a UI client, coordinates execution, applies the result, and returns the descriptive Events
func (s *Session) Execute(input string) ([]engine.Event, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.dispatch(input)
	if err != nil {
		return nil, err
	}
	for _, evt := range events {
		if err := s.applyAndAppend(evt); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (s *Session) dispatch(input string) ([]engine.Event, error) {
	astCmd, err := s.parser.ParseString("", input)
	if err != nil {
		// "name=notation" is not part of the command grammar.
		if name, raw := data.SplitNamed(input); name != "" {
			return command.RollNotation(name, raw, "", s.src, s.registry)
		}
		return nil, parser.MapError(input, err)
	}

	switch {
	case astCmd.Roll != nil:
		return command.ExecuteRoll(astCmd.Roll, s.src, s.registry)
	case astCmd.Bare != nil:
		return command.RollNotation("", astCmd.Bare.Notation(), "", s.src, s.registry)
	case astCmd.Preset != nil:
		return command.ExecutePreset(astCmd.Preset, s.presets, s.src, s.registry)
	case astCmd.Presets != nil:
		return command.ExecutePresets(s.presets), nil
	case astCmd.Total != nil:
		return command.ExecuteTotal(s.state), nil
	case astCmd.Clear != nil:
		return command.ExecuteClear(), nil
	case astCmd.Help != nil:
		return command.ExecuteHelp(astCmd.Help)
	}
	return nil, fmt.Errorf("unknown command")
}

// applyAndAppend mutates the state and records the event
func (s *Session) applyAndAppend(evt engine.Event) error {
	if err := evt.Apply(s.state); err != nil {
		return err
	}
	s.events = append(s.events, evt)
	return nil
}
