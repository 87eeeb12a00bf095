package ws

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Room level outcomes (rejections, events for the peer) are delivered by the
// coordinator. Handlers only return errors for frames they cannot decode.

func CreateSession(ctx context.Context, e Event, c *Client) error {
	c.manager.coordinator.CreateSession(c.Participant())
	return nil
}

func JoinSession(ctx context.Context, e Event, c *Client) error {
	var payload PayloadRoom

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	c.manager.coordinator.JoinSession(c.Participant(), payload.Code)
	return nil
}

func SubmitMove(ctx context.Context, e Event, c *Client) error {
	var payload PayloadMove

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	c.manager.coordinator.SubmitMove(c.ID, payload.Code, payload.Grid, payload.CurrentRow)
	return nil
}

func ReportCompletion(ctx context.Context, e Event, c *Client) error {
	var payload PayloadCompletion

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	c.manager.coordinator.ReportCompletion(c.ID, payload.Code, payload.Won, payload.Attempts, payload.ElapsedTime)
	return nil
}

func ContinueSession(ctx context.Context, e Event, c *Client) error {
	var payload PayloadRoom

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	c.manager.coordinator.Continue(c.ID, payload.Code)
	return nil
}

func SendChat(ctx context.Context, e Event, c *Client) error {
	var payload PayloadChat

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	if !c.chatLimiter.Allow() {
		log.Debug().Str("conn", c.ID).Msg("chat message rate limited")
		return nil
	}

	c.manager.coordinator.RelayChat(c.ID, payload.Code, payload.Message)
	return nil
}

func StartTyping(ctx context.Context, e Event, c *Client) error {
	return setTyping(e, c, true)
}

func StopTyping(ctx context.Context, e Event, c *Client) error {
	return setTyping(e, c, false)
}

func setTyping(e Event, c *Client, typing bool) error {
	var payload PayloadRoom

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	c.manager.coordinator.SetTyping(c.ID, payload.Code, typing)
	return nil
}

func Pause(ctx context.Context, e Event, c *Client) error {
	var payload PayloadRoom

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	c.manager.coordinator.Pause(c.ID, payload.Code)
	return nil
}

func Resume(ctx context.Context, e Event, c *Client) error {
	var payload PayloadRoom

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	c.manager.coordinator.Resume(c.ID, payload.Code)
	return nil
}
