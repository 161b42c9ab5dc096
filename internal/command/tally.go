package command

import (
	"github.com/suderio/jdice/internal/engine"
)

// ExecuteTotal reports the cumulative total of the session.
func ExecuteTotal(state *engine.Tally) []engine.Event {
	return []engine.Event{&engine.TallyShownEvent{Cumulative: state.Cumulative}}
}

// ExecuteClear resets the session tally.
func ExecuteClear() []engine.Event {
	return []engine.Event{&engine.TallyClearedEvent{}}
}
