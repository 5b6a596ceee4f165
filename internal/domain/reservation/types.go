package reservation

// State covers both what is stored and what is computed on read. Only
// StateConfirmed, StateCancelled and StateCompleted are ever persisted.
type State string

const (
	StateRequested State = "requested"
	StateConfirmed State = "confirmed"
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsStorable() bool {
	switch s {
	case StateConfirmed, StateCompleted, StateCancelled:
		return true
	default:
		return false
	}
}

func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

func ParseStoredState(s string) (State, error) {
	st := State(s)
	if !st.IsStorable() {
		return "", ErrUnknownState
	}
	return st, nil
}
