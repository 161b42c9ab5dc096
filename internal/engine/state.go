package engine

// Tally is the actively calculated projection of a roll session.
type Tally struct {
	Cumulative int      `json:"cumulative"`
	Rolls      int      `json:"rolls"`
	Passed     int      `json:"passed"`
	Failed     int      `json:"failed"`
	History    []string `json:"history"`
}

// NewTally creates an empty clean slate
func NewTally() *Tally {
	return &Tally{
		History: make([]string, 0),
	}
}

// Last returns up to n of the most recent history lines, newest first.
func (t *Tally) Last(n int) []string {
	if n > len(t.History) {
		n = len(t.History)
	}
	out := make([]string, 0, n)
	for i := len(t.History) - 1; i >= len(t.History)-n; i-- {
		out = append(out, t.History[i])
	}
	return out
}
