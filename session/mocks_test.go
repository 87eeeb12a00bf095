package session

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/judgegodwins/wordle-duel/game"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- TickerCreator ---

type MockTickerCreator struct {
	mock.Mock
}

func (m *MockTickerCreator) Create(d time.Duration) Ticker {
	args := m.Called(d)
	return args.Get(0).(Ticker)
}

// manualTicker fires only when the test sends on ch.
type manualTicker struct {
	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
}

func newManualTicker() *manualTicker {
	return &manualTicker{
		ch:      make(chan time.Time),
		stopped: make(chan struct{}),
	}
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() {
	m.stopOnce.Do(func() { close(m.stopped) })
}

func (m *manualTicker) fire(t *testing.T) {
	t.Helper()
	select {
	case m.ch <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("ticker was not consumed")
	}
}

func (m *manualTicker) requireStopped(t *testing.T) {
	t.Helper()
	select {
	case <-m.stopped:
	case <-time.After(time.Second):
		t.Fatal("ticker was not stopped")
	}
}

// --- WordProvider ---

type fixedWord string

func (w fixedWord) Pick() string { return string(w) }

// --- Notifier ---

type delivered struct {
	Kind    game.EventKind
	Payload any
}

type recorder struct {
	mu    sync.Mutex
	boxes map[string]chan delivered
}

func newRecorder() *recorder {
	return &recorder{boxes: make(map[string]chan delivered)}
}

func (r *recorder) box(conn string) chan delivered {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.boxes[conn]
	if !ok {
		b = make(chan delivered, 64)
		r.boxes[conn] = b
	}
	return b
}

func (r *recorder) Notify(conn string, kind game.EventKind, payload any) {
	r.box(conn) <- delivered{Kind: kind, Payload: payload}
}

func (r *recorder) next(t *testing.T, conn string) delivered {
	t.Helper()
	select {
	case d := <-r.box(conn):
		return d
	case <-time.After(time.Second):
		t.Fatalf("no event for %s", conn)
		return delivered{}
	}
}

func (r *recorder) expect(t *testing.T, conn string, kind game.EventKind) any {
	t.Helper()
	d := r.next(t, conn)
	require.Equal(t, kind, d.Kind, "unexpected event for %s", conn)
	return d.Payload
}

func (r *recorder) expectNone(t *testing.T, conn string) {
	t.Helper()
	select {
	case d := <-r.box(conn):
		t.Fatalf("unexpected %s for %s", d.Kind, conn)
	case <-time.After(50 * time.Millisecond):
	}
}

type harness struct {
	coordinator *Coordinator
	events      *recorder
	tickers     *MockTickerCreator
	ticker      *manualTicker
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		events:  newRecorder(),
		tickers: &MockTickerCreator{},
		ticker:  newManualTicker(),
	}
	h.tickers.On("Create", time.Second).Return(h.ticker).Maybe()

	h.coordinator = NewCoordinator(Options{
		Words:    fixedWord("crane"),
		Notifier: h.events,
		Tickers:  h.tickers,
		Interval: time.Second,
		Rng:      rand.New(rand.NewSource(42)),
	})

	return h
}

func participant(conn string) game.Participant {
	return game.Participant{ConnID: conn, PlayerID: "player-" + conn}
}

// create and join a room, draining the join events
func (h *harness) joined(t *testing.T, a, b string) string {
	t.Helper()

	code := h.coordinator.CreateSession(participant(a))
	require.NotEmpty(t, code)
	h.events.expect(t, a, game.EventRoomCreated)

	h.coordinator.JoinSession(participant(b), code)
	h.events.expect(t, a, game.EventJoined)
	h.events.expect(t, b, game.EventJoined)

	return code
}

func (h *harness) started(t *testing.T, a, b string) string {
	t.Helper()

	code := h.joined(t, a, b)
	for i := 0; i <= game.CountdownStart; i++ {
		h.ticker.fire(t)
	}
	for _, conn := range []string{a, b} {
		for i := 0; i <= game.CountdownStart; i++ {
			h.events.expect(t, conn, game.EventCountdownTick)
		}
		h.events.expect(t, conn, game.EventSessionStarted)
	}

	return code
}
