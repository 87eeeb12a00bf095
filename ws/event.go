package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/judgegodwins/wordle-duel/game"
)

type Event struct {
	Type    string          `json:"type"`
	TraceID string          `json:"trace_id"`
	Payload json.RawMessage `json:"payload"`
}

type EventHandler func(ctx context.Context, evt Event, c *Client) error

// Client -> server event types. Server -> client types are game.EventKind.
const (
	EventCreateSession    = "create_session"
	EventJoinSession      = "join_session"
	EventSubmitMove       = "submit_move"
	EventReportCompletion = "report_completion"
	EventContinueSession  = "continue_session"
	EventSendChat         = "send_chat"
	EventStartTyping      = "start_typing"
	EventStopTyping       = "stop_typing"
	EventPause            = "pause"
	EventResume           = "resume"
	EventError            = "error"
)

type PayloadError struct {
	Message string `json:"message"`
}

type PayloadRoom struct {
	Code string `json:"code" validate:"required"`
}

type PayloadMove struct {
	Code       string    `json:"code" validate:"required"`
	Grid       game.Grid `json:"grid"`
	CurrentRow int       `json:"currentRow"`
}

type PayloadCompletion struct {
	Code        string `json:"code" validate:"required"`
	Won         bool   `json:"won"`
	Attempts    int    `json:"attempts" validate:"gte=0"`
	ElapsedTime string `json:"elapsedTime" validate:"required"`
}

type PayloadChat struct {
	Code    string `json:"code" validate:"required"`
	Message string `json:"message" validate:"required,max=500"`
}

func NewEvent(evtType string, payload any) (Event, error) {
	b, err := json.Marshal(payload)

	if err != nil {
		return Event{}, err
	}

	evt := NewEventStruct(evtType, b, "")

	return evt, nil
}

func NewErrorEvent(traceId, message string) (Event, error) {
	payload := PayloadError{Message: message}
	b, err := json.Marshal(payload)

	if err != nil {
		return Event{}, err
	}

	evt := NewEventStruct(fmt.Sprintf("%v_%v", EventError, traceId), b, traceId)

	return evt, nil
}

func NewEventStruct(evtType string, payload []byte, traceId string) Event {
	return Event{
		Type:    evtType,
		TraceID: traceId,
		Payload: payload,
	}
}
