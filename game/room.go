package game

import (
	"time"

	"golang.org/x/exp/slices"
)

const (
	Rows           = 6
	Cols           = 5
	CountdownStart = 3
)

// Grid is a snapshot of a player's board; "" marks an unfilled cell.
type Grid [Rows][Cols]string

// SlotID identifies one of the two seats in a room.
type SlotID int

const (
	SlotA SlotID = iota
	SlotB
)

func (s SlotID) String() string {
	return []string{"A", "B"}[s]
}

func (s SlotID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s SlotID) Other() SlotID {
	return 1 - s
}

// Participant binds a stable player identity to the connection it is
// currently using. Only ConnID is used for addressing events.
type Participant struct {
	ConnID   string
	PlayerID string
	Name     string
}

// Outcome is what a participant reported when it finished.
type Outcome struct {
	Finished    bool
	Attempts    int
	ElapsedTime string
	Won         bool
}

type Slot struct {
	Participant *Participant
	Grid        Grid
	CurrentRow  int
	Outcome     Outcome
	Typing      bool
}

func (s Slot) summary() SlotSummary {
	return SlotSummary{
		Finished:    s.Outcome.Finished,
		Won:         s.Outcome.Won,
		Attempts:    s.Outcome.Attempts,
		ElapsedTime: s.Outcome.ElapsedTime,
	}
}

// Room is the state of one two-player session. It performs no I/O: every
// transition returns the events it produced and callers deliver them.
// A Room is not safe for concurrent use.
type Room struct {
	Code       string
	SecretWord string
	Phase      Phase
	StartedAt  time.Time
	Paused     bool
	Countdown  int
	Slots      [2]Slot
}

func NewRoom(code, secretWord string, creator Participant) *Room {
	if creator.Name == "" {
		creator.Name = defaultName(SlotA)
	}

	r := &Room{
		Code:       code,
		SecretWord: secretWord,
		Phase:      PhaseWaiting,
		Countdown:  CountdownStart,
	}
	r.Slots[SlotA].Participant = &creator

	return r
}

func defaultName(slot SlotID) string {
	return []string{"Player 1", "Player 2"}[slot]
}

// Created is the confirmation sent to the creator.
func (r *Room) Created() Outbound {
	return Outbound{
		Kind:       EventRoomCreated,
		Payload:    RoomCreatedPayload{Code: r.Code, SecretWord: r.SecretWord},
		Recipients: []string{r.Slots[SlotA].Participant.ConnID},
	}
}

// Members returns the connection ids seated in the room, A first.
func (r *Room) Members() []string {
	members := make([]string, 0, 2)
	for _, s := range r.Slots {
		if s.Participant != nil {
			members = append(members, s.Participant.ConnID)
		}
	}
	return members
}

func (r *Room) IsMember(connID string) bool {
	return slices.Contains(r.Members(), connID)
}

func (r *Room) Full() bool {
	return r.Slots[SlotB].Participant != nil
}

// SlotOf reports which slot connID occupies.
func (r *Room) SlotOf(connID string) (SlotID, bool) {
	i := slices.IndexFunc(r.Slots[:], func(s Slot) bool {
		return s.Participant != nil && s.Participant.ConnID == connID
	})
	if i < 0 {
		return 0, false
	}
	return SlotID(i), true
}

func (r *Room) toRoom(kind EventKind, payload any) Outbound {
	return Outbound{Kind: kind, Payload: payload, Recipients: r.Members()}
}

func (r *Room) toPeer(from SlotID, kind EventKind, payload any) []Outbound {
	peer := r.Slots[from.Other()].Participant
	if peer == nil {
		return nil
	}
	return []Outbound{{Kind: kind, Payload: payload, Recipients: []string{peer.ConnID}}}
}

// Join seats p in slot B and starts the countdown.
func (r *Room) Join(p Participant) []Outbound {
	if r.Full() {
		return []Outbound{{
			Kind:       EventRejected,
			Payload:    RejectedPayload{Reason: ReasonRoomFull},
			Recipients: []string{p.ConnID},
		}}
	}

	if p.Name == "" {
		p.Name = defaultName(SlotB)
	}

	r.Slots[SlotB].Participant = &p
	r.Phase = PhaseCountdown
	r.Countdown = CountdownStart

	return []Outbound{r.toRoom(EventJoined, JoinedPayload{SecretWord: r.SecretWord})}
}

// Tick advances the countdown by one step. The tick carrying count 0 also
// starts the session.
func (r *Room) Tick(now time.Time) []Outbound {
	if r.Phase != PhaseCountdown {
		return nil
	}

	events := []Outbound{r.toRoom(EventCountdownTick, CountdownTickPayload{Count: r.Countdown})}
	r.Countdown--

	if r.Countdown < 0 {
		r.Phase = PhaseInProgress
		r.StartedAt = now
		events = append(events, r.toRoom(EventSessionStarted, SessionStartedPayload{SecretWord: r.SecretWord}))
	}

	return events
}

func (r *Room) SubmitMove(connID string, grid Grid, currentRow int) []Outbound {
	slot, ok := r.SlotOf(connID)
	if !ok {
		return nil
	}

	r.Slots[slot].Grid = grid
	r.Slots[slot].CurrentRow = currentRow

	return r.toPeer(slot, EventOpponentMoved, OpponentMovedPayload{Grid: grid, Connection: connID})
}

// ReportCompletion records a finished game for connID. A repeated report
// overwrites the earlier one.
func (r *Room) ReportCompletion(connID string, won bool, attempts int, elapsed string) []Outbound {
	slot, ok := r.SlotOf(connID)
	if !ok {
		return nil
	}

	r.Slots[slot].Outcome = Outcome{
		Finished:    true,
		Attempts:    attempts,
		ElapsedTime: elapsed,
		Won:         won,
	}

	var revealed *string
	if won {
		word := r.SecretWord
		revealed = &word
	}

	events := r.toPeer(slot, EventPeerFinished, PeerFinishedPayload{
		PlayerName:   r.Slots[slot].Participant.Name,
		Attempts:     attempts,
		ElapsedTime:  elapsed,
		Won:          won,
		RevealedWord: revealed,
	})

	bothFinished := r.Slots[SlotA].Outcome.Finished && r.Slots[SlotB].Outcome.Finished

	events = append(events, Outbound{
		Kind: EventSelfFinished,
		Payload: SelfFinishedPayload{
			Won:                 won,
			Attempts:            attempts,
			ElapsedTime:         elapsed,
			SecretWord:          r.SecretWord,
			StillWaitingForPeer: !bothFinished,
		},
		Recipients: []string{connID},
	})

	if !bothFinished {
		return events
	}

	payload := SessionCompletePayload{
		ParticipantA: r.Slots[SlotA].summary(),
		ParticipantB: r.Slots[SlotB].summary(),
		SecretWord:   r.SecretWord,
	}

	if winner, ok := Resolve(r.Slots[SlotA].Outcome, r.Slots[SlotB].Outcome); ok {
		conn := r.Slots[winner].Participant.ConnID
		payload.Winner = &conn
		payload.WinnerSlot = &winner
	}

	r.Phase = PhaseComplete

	return append(events, r.toRoom(EventSessionComplete, payload))
}

func (r *Room) Continue(connID string) []Outbound {
	slot, ok := r.SlotOf(connID)
	if !ok {
		return nil
	}
	return r.toPeer(slot, EventPeerContinuing, nil)
}

func (r *Room) RelayChat(connID, message string) []Outbound {
	slot, ok := r.SlotOf(connID)
	if !ok {
		return nil
	}

	return []Outbound{r.toRoom(EventChatMessage, ChatMessagePayload{
		Message:    message,
		SenderName: r.Slots[slot].Participant.Name,
	})}
}

// SetTyping only tracks the flag; pausing is requested separately.
func (r *Room) SetTyping(connID string, typing bool) []Outbound {
	slot, ok := r.SlotOf(connID)
	if !ok {
		return nil
	}

	r.Slots[slot].Typing = typing

	if typing {
		return r.toPeer(slot, EventPeerTypingStarted, nil)
	}
	return r.toPeer(slot, EventPeerTypingStopped, nil)
}

func (r *Room) Pause(connID string) []Outbound {
	slot, ok := r.SlotOf(connID)
	if !ok {
		return nil
	}

	r.Paused = true
	return r.toPeer(slot, EventSessionPaused, nil)
}

// Resume unpauses only while nobody is typing; otherwise nothing happens.
func (r *Room) Resume(connID string) []Outbound {
	slot, ok := r.SlotOf(connID)
	if !ok {
		return nil
	}

	if r.Slots[SlotA].Typing || r.Slots[SlotB].Typing {
		return nil
	}

	r.Paused = false
	return r.toPeer(slot, EventSessionResumed, nil)
}

// Disconnect terminates the room when connID is one of its participants.
// It reports false for strangers and for rooms already terminated.
func (r *Room) Disconnect(connID string) ([]Outbound, bool) {
	if r.Phase == PhaseTerminated {
		return nil, false
	}

	slot, ok := r.SlotOf(connID)
	if !ok {
		return nil, false
	}

	r.Phase = PhaseTerminated
	return r.toPeer(slot, EventPeerDisconnected, nil), true
}
