package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/judgegodwins/wordle-duel/game"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	pongWait     = 10 * time.Second
	pingInterval = (pongWait * 9) / 10
	writeWait    = 5 * time.Second
)

const (
	maxMessageSize = 4096
	egressSize     = 64
)

// Client is one websocket connection. ID is the connection id used to address
// events; PlayerID survives across connections of the same player.
type Client struct {
	ID          string
	PlayerID    string
	Username    string
	connection  *websocket.Conn
	manager     *Manager
	egress      chan Event
	chatLimiter *rate.Limiter
	err         chan error
}

func NewClient(conn *websocket.Conn, manager *Manager, playerID, username string) *Client {
	return &Client{
		ID:          uuid.NewString(),
		PlayerID:    playerID,
		Username:    username,
		connection:  conn,
		manager:     manager,
		egress:      make(chan Event, egressSize),
		chatLimiter: rate.NewLimiter(rate.Limit(manager.config.ChatRate), manager.config.ChatBurst),
		err:         make(chan error, 2),
	}
}

// Participant is the room-facing identity of this connection.
func (c *Client) Participant() game.Participant {
	return game.Participant{
		ConnID:   c.ID,
		PlayerID: c.PlayerID,
		Name:     c.Username,
	}
}

// Reads incoming messages from the clients websocket connection
func (c *Client) readMessages(ctx context.Context) {
	c.connection.SetReadLimit(maxMessageSize)

	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.handleError(err)
		return
	}

	c.connection.SetPongHandler(c.pongHandler)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, payload, err := c.connection.ReadMessage()

			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Warn().Err(err).Str("conn", c.ID).Msg("error reading message")
				}
				c.handleError(err)
				return
			}

			var evt Event

			if err := json.Unmarshal(payload, &evt); err != nil {
				c.pushError("", "cannot unmarshal json payload")
				continue
			}

			log.Debug().Str("conn", c.ID).Str("event", evt.Type).Str("trace_id", evt.TraceID).Msg("event received")

			if err := c.manager.routeEvent(ctx, evt, c); err != nil {
				log.Debug().Err(err).Str("conn", c.ID).Str("event", evt.Type).Msg("error handling event")
				// handler errors go back to the sender under the event's trace id
				c.pushError(evt.TraceID, err.Error())
			}
		}
	}
}

// writes messages pushed to the client's egress channel
func (c *Client) writeMessages(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case message := <-c.egress:
			data, err := json.Marshal(message)

			if err != nil {
				log.Error().Err(err).Str("conn", c.ID).Str("event", message.Type).Msg("cannot marshal event")
				continue
			}

			c.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.connection.WriteMessage(websocket.TextMessage, data); err != nil {
				c.handleError(err)
				return
			}
		case <-ticker.C:
			c.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.connection.WriteMessage(websocket.PingMessage, []byte("")); err != nil {
				c.handleError(err)
				return
			}
		}
	}
}

// Sets a new read deadline when a pong is received for a ping message.
func (c *Client) pongHandler(pongMsg string) error {
	return c.connection.SetReadDeadline(time.Now().Add(pongWait))
}

// Reports a pump failure to ServeWS, which closes the connection. Only the
// first error matters so later ones are dropped.
func (c *Client) handleError(e error) {
	select {
	case c.err <- e:
	default:
	}
}

// Returns the error channel
func (c *Client) Err() chan error {
	return c.err
}

// Creates an event and pushes to client's egress
func (c *Client) PushEventToEgress(evtType string, payload any) error {
	evt, err := NewEvent(evtType, payload)
	if err != nil {
		return err
	}
	if !c.PushToEgress(evt) {
		return errors.New("client egress full")
	}
	return nil
}

// Queues an event for the write pump without blocking. Events for a client
// that stopped draining its queue are dropped.
func (c *Client) PushToEgress(evt Event) bool {
	select {
	case c.egress <- evt:
		return true
	default:
		log.Warn().Str("conn", c.ID).Str("event", evt.Type).Msg("egress full, dropping event")
		return false
	}
}

func (c *Client) pushError(traceID, message string) {
	errEvent, err := NewErrorEvent(traceID, message)
	if err != nil {
		log.Error().Err(err).Msg("error creating error event")
		return
	}
	c.PushToEgress(errEvent)
}
