package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/judgegodwins/wordle-duel/game"
	"github.com/judgegodwins/wordle-duel/session"
	"github.com/judgegodwins/wordle-duel/tokens"
	"github.com/judgegodwins/wordle-duel/util"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var ErrUnknownEvent = errors.New("there is no such event type")

type ClientList map[string]*Client

type Manager struct {
	clients ClientList
	sync.RWMutex
	handlers    map[string]EventHandler
	coordinator *session.Coordinator
	config      *util.Config
	upgrader    websocket.Upgrader
}

// NewManager builds the websocket manager and the room coordinator it feeds.
// opts.Notifier is always the manager itself.
func NewManager(config *util.Config, opts session.Options) *Manager {
	m := &Manager{
		clients:  make(ClientList),
		handlers: make(map[string]EventHandler),
		config:   config,
	}

	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     m.checkOrigin,
	}

	opts.Notifier = m
	if opts.Interval == 0 {
		opts.Interval = config.CountdownInterval
	}
	m.coordinator = session.NewCoordinator(opts)

	m.setupEventHandlers()

	return m
}

func (m *Manager) Coordinator() *session.Coordinator {
	return m.coordinator
}

func (m *Manager) setupEventHandlers() {
	m.handlers[EventCreateSession] = CreateSession
	m.handlers[EventJoinSession] = JoinSession
	m.handlers[EventSubmitMove] = SubmitMove
	m.handlers[EventReportCompletion] = ReportCompletion
	m.handlers[EventContinueSession] = ContinueSession
	m.handlers[EventSendChat] = SendChat
	m.handlers[EventStartTyping] = StartTyping
	m.handlers[EventStopTyping] = StopTyping
	m.handlers[EventPause] = Pause
	m.handlers[EventResume] = Resume
}

func (m *Manager) routeEvent(ctx context.Context, evt Event, c *Client) error {
	if handler, ok := m.handlers[evt.Type]; ok {
		if err := handler(ctx, evt, c); err != nil {
			return err
		}

		return nil
	}

	return ErrUnknownEvent
}

// Notify delivers a room event to one connection. Unknown connections are
// ignored; they have already gone away.
func (m *Manager) Notify(conn string, kind game.EventKind, payload any) {
	m.RLock()
	client, ok := m.clients[conn]
	m.RUnlock()

	if !ok {
		return
	}

	if err := client.PushEventToEgress(string(kind), payload); err != nil {
		log.Warn().Err(err).Str("conn", conn).Str("event", string(kind)).Msg("event not delivered")
	}
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	m.clients[client.ID] = client
}

// removeClient forgets the connection and tears down its room.
func (m *Manager) removeClient(client *Client) {
	m.Lock()
	_, ok := m.clients[client.ID]
	delete(m.clients, client.ID)
	m.Unlock()

	if !ok {
		return
	}

	m.coordinator.Disconnect(client.ID)

	// the write pump may still be mid-write; WriteControl may run alongside it
	err := client.connection.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		log.Debug().Err(err).Str("conn", client.ID).Msg("error sending close message")
	}

	client.connection.Close()
}

// Websocket connection handler. A token is optional: without one the
// connection plays under a fresh anonymous player id.
func (m *Manager) ServeWS(c *gin.Context) {
	playerID, username := uuid.NewString(), ""

	payload, err := tokens.FromRequest(c, []byte(m.config.JWTSecret))

	switch {
	case errors.Is(err, tokens.ErrNoToken):
	case err != nil:
		c.IndentedJSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "unauthorized",
		})
		return
	default:
		playerID, username = payload.ID, payload.Username
	}

	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)

	if err != nil {
		// the upgrader has already written the error response
		log.Warn().Err(err).Msg("error upgrading to websocket connection")
		return
	}

	client := NewClient(conn, m, playerID, username)

	m.addClient(client)

	log.Info().Str("conn", client.ID).Str("player", playerID).Msg("client connected")

	ctx, cancel := context.WithCancel(c.Request.Context())

	defer func() {
		cancel()
		m.removeClient(client)
	}()

	go client.readMessages(ctx)
	go client.writeMessages(ctx)

	err = <-client.Err()

	log.Info().Err(err).Str("conn", client.ID).Msg("client disconnected")
}

func (m *Manager) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return lo.Contains(m.config.AllowedOrigins, origin)
}
