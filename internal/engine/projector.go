package engine

// Projector computes a Tally from the Event sequence
type Projector struct{}

// NewProjector creates a standard projector.
func NewProjector() *Projector {
	return &Projector{}
}

// Build folds the standard apply functions.
func (p *Projector) Build(events []Event) (*Tally, error) {
	state := NewTally()

	for _, evt := range events {
		if err := evt.Apply(state); err != nil {
			return nil, err
		}
	}

	return state, nil
}
