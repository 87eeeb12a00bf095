package game

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidElapsed = errors.New("elapsed time must be minutes:seconds")

// largest minute count whose total in seconds cannot overflow
const maxMinutes = (math.MaxInt - 59) / 60

// ParseElapsed converts a "minutes:seconds" string into total seconds.
func ParseElapsed(elapsed string) (int, error) {
	parts := strings.Split(strings.TrimSpace(elapsed), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidElapsed, elapsed)
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 || minutes > maxMinutes {
		return 0, fmt.Errorf("%w: %q", ErrInvalidElapsed, elapsed)
	}

	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 || seconds > math.MaxInt-minutes*60 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidElapsed, elapsed)
	}

	return minutes*60 + seconds, nil
}

// Resolve picks the overall winner once both slots have finished.
// A sole winner takes it. When both won, the smaller elapsed time wins and an
// exact tie goes to slot A. When neither won there is no winner.
func Resolve(a, b Outcome) (SlotID, bool) {
	switch {
	case a.Won && !b.Won:
		return SlotA, true
	case b.Won && !a.Won:
		return SlotB, true
	case !a.Won && !b.Won:
		return 0, false
	}

	if elapsedOrMax(a.ElapsedTime) <= elapsedOrMax(b.ElapsedTime) {
		return SlotA, true
	}
	return SlotB, true
}

// unparseable times rank behind every parseable one
func elapsedOrMax(elapsed string) int {
	total, err := ParseElapsed(elapsed)
	if err != nil {
		return math.MaxInt
	}
	return total
}
