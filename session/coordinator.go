package session

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/judgegodwins/wordle-duel/game"
	"github.com/rs/zerolog/log"
)

// Notifier delivers an event to a single connection. Implementations must
// not block.
type Notifier interface {
	Notify(conn string, kind game.EventKind, payload any)
}

type Options struct {
	Words    game.WordProvider
	Notifier Notifier
	Tickers  TickerCreator
	// Interval is the countdown time unit.
	Interval time.Duration
	Rng      *rand.Rand
}

// RoomInfo is a point-in-time view of a room.
type RoomInfo struct {
	Code      string     `json:"code"`
	Phase     game.Phase `json:"phase"`
	Full      bool       `json:"full"`
	Paused    bool       `json:"paused"`
	StartedAt time.Time  `json:"startedAt"`
}

// Coordinator is the entry point for every room operation. It is safe for
// concurrent use; each room is serialized by its own actor.
type Coordinator struct {
	registry *Registry
	words    game.WordProvider
	notifier Notifier
	tickers  TickerCreator
	interval time.Duration
}

func NewCoordinator(opts Options) *Coordinator {
	if opts.Tickers == nil {
		opts.Tickers = SystemTickers()
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Coordinator{
		registry: NewRegistry(opts.Rng),
		words:    opts.Words,
		notifier: opts.Notifier,
		tickers:  opts.Tickers,
		interval: opts.Interval,
	}
}

func (c *Coordinator) Registry() *Registry {
	return c.registry
}

func (c *Coordinator) reject(conn string, reason game.Reason) {
	c.notifier.Notify(conn, game.EventRejected, game.RejectedPayload{Reason: reason})
}

// CreateSession opens a room with p as participant A and returns its code.
// The creator receives room_created once the room's actor is running.
func (c *Coordinator) CreateSession(p game.Participant) string {
	secret := c.words.Pick()

	a, err := c.registry.Create(p.ConnID, func(code string) *actor {
		return newActor(game.NewRoom(code, secret, p), c)
	})

	if err != nil {
		log.Debug().Err(err).Str("conn", p.ConnID).Msg("create rejected")
		c.reject(p.ConnID, game.ReasonAlreadyInRoom)
		return ""
	}

	go a.run()

	log.Info().Str("room", a.room.Code).Str("conn", p.ConnID).Msg("room created")
	return a.room.Code
}

// JoinSession seats p in the room at code. Rejections go to p only.
func (c *Coordinator) JoinSession(p game.Participant, code string) {
	a, err := c.registry.Reserve(p.ConnID, code)

	switch {
	case errors.Is(err, ErrRoomNotFound):
		c.reject(p.ConnID, game.ReasonRoomNotFound)
		return
	case errors.Is(err, ErrAlreadyInRoom):
		c.reject(p.ConnID, game.ReasonAlreadyInRoom)
		return
	}

	if !a.send(func(a *actor) { a.join(p) }) {
		c.reject(p.ConnID, game.ReasonRoomNotFound)
	}
}

// dispatch runs apply on the room's actor. Unknown codes are ignored.
func (c *Coordinator) dispatch(code string, apply func(r *game.Room) []game.Outbound) {
	a, ok := c.registry.Get(code)
	if !ok {
		return
	}

	a.send(func(a *actor) {
		a.deliver(apply(a.room))
	})
}

func (c *Coordinator) SubmitMove(conn, code string, grid game.Grid, currentRow int) {
	c.dispatch(code, func(r *game.Room) []game.Outbound {
		return r.SubmitMove(conn, grid, currentRow)
	})
}

func (c *Coordinator) ReportCompletion(conn, code string, won bool, attempts int, elapsed string) {
	c.dispatch(code, func(r *game.Room) []game.Outbound {
		return r.ReportCompletion(conn, won, attempts, elapsed)
	})
}

func (c *Coordinator) Continue(conn, code string) {
	c.dispatch(code, func(r *game.Room) []game.Outbound {
		return r.Continue(conn)
	})
}

func (c *Coordinator) RelayChat(conn, code, message string) {
	c.dispatch(code, func(r *game.Room) []game.Outbound {
		return r.RelayChat(conn, message)
	})
}

func (c *Coordinator) SetTyping(conn, code string, typing bool) {
	c.dispatch(code, func(r *game.Room) []game.Outbound {
		return r.SetTyping(conn, typing)
	})
}

func (c *Coordinator) Pause(conn, code string) {
	c.dispatch(code, func(r *game.Room) []game.Outbound {
		return r.Pause(conn)
	})
}

func (c *Coordinator) Resume(conn, code string) {
	c.dispatch(code, func(r *game.Room) []game.Outbound {
		return r.Resume(conn)
	})
}

// Disconnect tears down the room conn sits in, if any. The peer is told and
// the room is deleted whatever its phase.
func (c *Coordinator) Disconnect(conn string) {
	code, ok := c.registry.RoomOf(conn)
	if !ok {
		return
	}

	a, ok := c.registry.Get(code)
	if !ok {
		return
	}

	a.send(func(a *actor) { a.disconnect(conn) })
}

// Inspect asks the room's actor for its current state.
func (c *Coordinator) Inspect(ctx context.Context, code string) (RoomInfo, error) {
	a, ok := c.registry.Get(code)
	if !ok {
		return RoomInfo{}, ErrRoomNotFound
	}

	reply := make(chan RoomInfo, 1)
	if !a.send(func(a *actor) { reply <- a.info() }) {
		return RoomInfo{}, ErrRoomNotFound
	}

	select {
	case info := <-reply:
		return info, nil
	case <-a.done:
		return RoomInfo{}, ErrRoomNotFound
	case <-ctx.Done():
		return RoomInfo{}, ctx.Err()
	}
}
