package engine

import (
	"fmt"
	"strings"

	"github.com/suderio/jdice/internal/dice"
)

type EventType string

const (
	EventDiceRolled    EventType = "DiceRolled"
	EventCheckResolved EventType = "CheckResolved"
	EventTallyShown    EventType = "TallyShown"
	EventTallyCleared  EventType = "TallyCleared"
	EventPresetsListed EventType = "PresetsListed"
	EventHelpRequested EventType = "HelpRequested"
)

// Event is the building block of a roll session.
type Event interface {
	Type() EventType
	Apply(state *Tally) error
	Message() string
}

// EntryRoll is the outcome of one entry of a roll list.
type EntryRoll struct {
	Expr   string `json:"expr"`
	Values []int  `json:"values"`
	Bonus  int    `json:"bonus"`
	Total  int    `json:"total"`
	Error  string `json:"error,omitempty"`
}

// DiceRolledEvent tracks the outcome of rolling a whole notation string.
type DiceRolledEvent struct {
	Name     string      `json:"name,omitempty"`
	Notation string      `json:"notation"`
	Entries  []EntryRoll `json:"entries"`
	Total    int         `json:"total"`
}

// NewDiceRolledEvent captures rolled outcomes. Entries that failed keep their
// error text and do not count towards the total.
func NewDiceRolledEvent(name, notation string, out dice.Outcomes) *DiceRolledEvent {
	evt := &DiceRolledEvent{
		Name:     name,
		Notation: notation,
		Entries:  make([]EntryRoll, 0, len(out)),
		Total:    out.Total(),
	}
	for _, oc := range out {
		entry := EntryRoll{Expr: oc.Expr.String()}
		if oc.Err != nil {
			entry.Error = oc.Err.Error()
		} else {
			entry.Values = oc.Result.Values
			entry.Bonus = oc.Result.Bonus
			entry.Total = oc.Result.Total
		}
		evt.Entries = append(evt.Entries, entry)
	}
	return evt
}

func (e *DiceRolledEvent) Type() EventType { return EventDiceRolled }
func (e *DiceRolledEvent) Apply(state *Tally) error {
	state.Cumulative += e.Total
	state.Rolls++

	label := e.Notation
	if e.Name != "" {
		label = e.Name
	}
	state.History = append(state.History, fmt.Sprintf("%s: %d", label, e.Total))
	return nil
}
func (e *DiceRolledEvent) Message() string {
	var sb strings.Builder
	prefix := ""
	if e.Name != "" {
		sb.WriteString(e.Name + "\n")
		prefix = "  "
	}
	for _, entry := range e.Entries {
		if entry.Error != "" {
			sb.WriteString(fmt.Sprintf("%s%s  =>  error: %s\n", prefix, entry.Expr, entry.Error))
			continue
		}
		res := dice.Result{Values: entry.Values, Bonus: entry.Bonus, Total: entry.Total}
		sb.WriteString(fmt.Sprintf("%s%s  =>  %s\n", prefix, entry.Expr, res))
	}
	if len(e.Entries) > 1 {
		sb.WriteString(fmt.Sprintf("%sTotal for this roll: %d\n", prefix, e.Total))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// CheckResolvedEvent reports a predicate evaluated against a roll.
type CheckResolvedEvent struct {
	Expression string `json:"expression"`
	Total      int    `json:"total"`
	Passed     bool   `json:"passed"`
}

func (e *CheckResolvedEvent) Type() EventType { return EventCheckResolved }
func (e *CheckResolvedEvent) Apply(state *Tally) error {
	if e.Passed {
		state.Passed++
	} else {
		state.Failed++
	}
	return nil
}
func (e *CheckResolvedEvent) Message() string {
	verdict := "FAILED"
	if e.Passed {
		verdict = "PASSED"
	}
	return fmt.Sprintf("Check %s (total %d): %s", e.Expression, e.Total, verdict)
}

// TallyShownEvent reports the cumulative total at the time it was asked for.
type TallyShownEvent struct {
	Cumulative int `json:"cumulative"`
}

func (e *TallyShownEvent) Type() EventType { return EventTallyShown }
func (e *TallyShownEvent) Apply(state *Tally) error { return nil }
func (e *TallyShownEvent) Message() string {
	return fmt.Sprintf("Cumulative Total: %d", e.Cumulative)
}

// TallyClearedEvent resets the tally.
type TallyClearedEvent struct{}

func (e *TallyClearedEvent) Type() EventType { return EventTallyCleared }
func (e *TallyClearedEvent) Apply(state *Tally) error {
	*state = *NewTally()
	return nil
}
func (e *TallyClearedEvent) Message() string { return "Cleared." }

// PresetsListedEvent lists the presets available to the session.
type PresetsListedEvent struct {
	Lines []string `json:"lines"`
}

func (e *PresetsListedEvent) Type() EventType { return EventPresetsListed }
func (e *PresetsListedEvent) Apply(state *Tally) error { return nil }
func (e *PresetsListedEvent) Message() string {
	if len(e.Lines) == 0 {
		return "No presets loaded."
	}
	return strings.Join(e.Lines, "\n")
}

// HelpRequestedEvent carries usage text.
type HelpRequestedEvent struct {
	Text string `json:"text"`
}

func (e *HelpRequestedEvent) Type() EventType { return EventHelpRequested }
func (e *HelpRequestedEvent) Apply(state *Tally) error { return nil }
func (e *HelpRequestedEvent) Message() string { return e.Text }
