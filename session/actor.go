package session

import (
	"sync"
	"time"

	"github.com/judgegodwins/wordle-duel/game"
	"github.com/rs/zerolog/log"
)

type command func(a *actor)

// actor owns one room. Client commands, countdown ticks and disconnects all
// pass through run so the room only ever sees one mutation at a time.
type actor struct {
	room     *game.Room
	inbox    chan command
	done     chan struct{}
	ticker   Ticker
	tickers  TickerCreator
	interval time.Duration
	registry *Registry
	notifier Notifier

	// held shared by senders; shutdown takes it exclusively so no send is
	// still in flight when the inbox is drained
	sendMu sync.RWMutex
	closed bool
}

func newActor(room *game.Room, c *Coordinator) *actor {
	return &actor{
		room:     room,
		inbox:    make(chan command, 64),
		done:     make(chan struct{}),
		tickers:  c.tickers,
		interval: c.interval,
		registry: c.registry,
		notifier: c.notifier,
	}
}

// send queues cmd unless the actor has already shut down.
func (a *actor) send(cmd command) bool {
	a.sendMu.RLock()
	defer a.sendMu.RUnlock()

	select {
	case <-a.done:
		return false
	default:
	}

	select {
	case a.inbox <- cmd:
		return true
	case <-a.done:
		return false
	}
}

func (a *actor) run() {
	a.deliver([]game.Outbound{a.room.Created()})

	for {
		select {
		case cmd := <-a.inbox:
			cmd(a)
		case now := <-a.tickC():
			a.deliver(a.room.Tick(now))
			if a.room.Phase != game.PhaseCountdown {
				a.stopTicker()
			}
		}

		if a.room.Phase == game.PhaseTerminated {
			a.shutdown()
			return
		}
	}
}

// nil until the countdown starts, which keeps the select case idle
func (a *actor) tickC() <-chan time.Time {
	if a.ticker == nil {
		return nil
	}
	return a.ticker.C()
}

func (a *actor) startCountdown() {
	if a.ticker != nil {
		return
	}
	a.ticker = a.tickers.Create(a.interval)
	log.Debug().Str("room", a.room.Code).Dur("interval", a.interval).Msg("countdown started")
}

func (a *actor) stopTicker() {
	if a.ticker == nil {
		return
	}
	a.ticker.Stop()
	a.ticker = nil
}

func (a *actor) shutdown() {
	a.stopTicker()
	a.registry.Delete(a.room.Code)
	close(a.done)

	a.sendMu.Lock()
	a.closed = true
	a.sendMu.Unlock()

	a.drain()

	log.Info().Str("room", a.room.Code).Msg("room closed")
}

// drain runs commands queued before done was closed. The room is gone, so
// they produce no events except the rejection of a pending join.
func (a *actor) drain() {
	for {
		select {
		case cmd := <-a.inbox:
			cmd(a)
		default:
			return
		}
	}
}

func (a *actor) join(p game.Participant) {
	if a.closed {
		a.registry.Release(p.ConnID, a.room.Code)
		a.notifier.Notify(p.ConnID, game.EventRejected, game.RejectedPayload{Reason: game.ReasonRoomNotFound})
		return
	}

	events := a.room.Join(p)

	if _, seated := a.room.SlotOf(p.ConnID); !seated {
		a.registry.Release(p.ConnID, a.room.Code)
		log.Debug().Str("room", a.room.Code).Str("conn", p.ConnID).Msg("join rejected, room full")
	} else if a.room.Phase == game.PhaseCountdown {
		a.startCountdown()
	}

	a.deliver(events)
}

func (a *actor) disconnect(conn string) {
	events, ok := a.room.Disconnect(conn)
	if !ok {
		// reserved by a join this room turned away
		a.registry.Release(conn, a.room.Code)
		return
	}
	a.deliver(events)
}

func (a *actor) info() RoomInfo {
	return RoomInfo{
		Code:      a.room.Code,
		Phase:     a.room.Phase,
		Full:      a.room.Full(),
		Paused:    a.room.Paused,
		StartedAt: a.room.StartedAt,
	}
}

func (a *actor) deliver(events []game.Outbound) {
	if a.closed {
		return
	}

	for _, evt := range events {
		log.Debug().
			Str("room", a.room.Code).
			Str("event", string(evt.Kind)).
			Strs("to", evt.Recipients).
			Msg("emit")

		for _, conn := range evt.Recipients {
			a.notifier.Notify(conn, evt.Kind, evt.Payload)
		}
	}
}
