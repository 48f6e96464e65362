// Package nop provides the publisher used when events.provider is "none".
package nop

import (
	"context"
	"sync/atomic"

	"github.com/papercomputeco/unibot/pkg/eventstream"
)

// Publisher drops every turn event after validating it and counts what it
// dropped.
type Publisher struct {
	dropped atomic.Int64
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) PublishTurn(_ context.Context, event *eventstream.TurnEvent) error {
	if event == nil {
		return eventstream.ErrNilTurnEvent
	}
	p.dropped.Add(1)
	return nil
}

// Dropped reports how many valid events were discarded.
func (p *Publisher) Dropped() int64 {
	return p.dropped.Load()
}

func (p *Publisher) Close() error {
	return nil
}
