package session

import "time"

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerCreator builds the periodic ticker that drives a room countdown.
type TickerCreator interface {
	Create(d time.Duration) Ticker
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }

func (t timeTicker) Stop() { t.t.Stop() }

type systemTickers struct{}

func (systemTickers) Create(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

// SystemTickers returns a TickerCreator backed by time.Ticker.
func SystemTickers() TickerCreator {
	return systemTickers{}
}
