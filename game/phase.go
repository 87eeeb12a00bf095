package game

// Phase is the position of a room in its lifecycle.
type Phase int

const (
	PhaseWaiting Phase = iota // 0
	PhaseCountdown
	PhaseInProgress
	PhaseComplete
	PhaseTerminated
)

func (p Phase) String() string {
	return []string{"waiting", "countdown", "in_progress", "complete", "terminated"}[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
