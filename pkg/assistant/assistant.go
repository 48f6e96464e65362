// Package assistant runs one conversation turn end to end: classify,
// answer, record, publish.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/unibot/pkg/conversation"
	"github.com/papercomputeco/unibot/pkg/eventstream"
	"github.com/papercomputeco/unibot/pkg/eventstream/nop"
	"github.com/papercomputeco/unibot/pkg/intent"
	"github.com/papercomputeco/unibot/pkg/knowledge"
	"github.com/papercomputeco/unibot/pkg/respond"
	"github.com/papercomputeco/unibot/pkg/speech"
	"github.com/papercomputeco/unibot/pkg/utils"
)

// publishTimeout bounds how long a turn waits on the event backend.
const publishTimeout = 5 * time.Second

// Responder produces the answer for a classified utterance.
type Responder interface {
	Generate(in intent.Intent, rawText string) string
}

// Reply is the outcome of one turn.
type Reply struct {
	Intent intent.Intent
	Text   string

	// Skipped is set for empty input; nothing was classified or recorded.
	Skipped bool

	// Failed is set when the turn panicked and Text holds the apology.
	Failed bool
}

type Option func(*Assistant)

func WithLogger(l *slog.Logger) Option {
	return func(a *Assistant) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithPublisher(p eventstream.Publisher) Option {
	return func(a *Assistant) {
		if p != nil {
			a.publisher = p
		}
	}
}

func WithResponder(r Responder) Option {
	return func(a *Assistant) {
		if r != nil {
			a.responder = r
		}
	}
}

// WithClock sets the clock for history and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) {
		if now != nil {
			a.now = now
		}
	}
}

func WithSessionID(id string) Option {
	return func(a *Assistant) {
		if id != "" {
			a.sessionID = id
		}
	}
}

func WithMode(m speech.Mode) Option {
	return func(a *Assistant) {
		a.mode = m
	}
}

// Assistant owns the per-session pipeline. It handles one turn at a time.
type Assistant struct {
	classifier *intent.Classifier
	responder  Responder
	history    *conversation.Manager
	publisher  eventstream.Publisher
	logger     *slog.Logger
	now        func() time.Time
	sessionID  string
	mode       speech.Mode
}

func New(store *knowledge.Store, opts ...Option) *Assistant {
	a := &Assistant{
		classifier: intent.NewClassifier(),
		publisher:  nop.NewPublisher(),
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
		sessionID:  uuid.NewString(),
		mode:       speech.ModeText,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.responder == nil {
		a.responder = respond.NewGenerator(store)
	}
	a.history = conversation.NewManager(conversation.WithClock(a.now))
	a.logger = a.logger.With("session", a.sessionID)
	return a
}

// Respond answers one utterance. Empty input is skipped. A panic while
// classifying or answering becomes an apology reply and is not recorded.
func (a *Assistant) Respond(ctx context.Context, input string) Reply {
	if strings.TrimSpace(input) == "" {
		return Reply{Skipped: true}
	}

	in, text, err := a.answer(input)
	if err != nil {
		a.logger.Error("turn failed", "error", err)
		return Reply{Text: fmt.Sprintf(apologyFormat, err), Failed: true}
	}

	a.history.Record(input, text, in)
	a.logger.Debug("turn answered", "intent", in, "input", utils.Snippet(input, 60), "reply", utils.Snippet(text, 60))
	a.publish(ctx, input, text, in)

	return Reply{Intent: in, Text: text}
}

func (a *Assistant) answer(input string) (in intent.Intent, text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	match := a.classifier.Explain(input)
	a.logger.Debug("classified", "intent", match.Intent, "pattern", match.Pattern)
	return match.Intent, a.responder.Generate(match.Intent, input), nil
}

func (a *Assistant) publish(ctx context.Context, input, text string, in intent.Intent) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	event := eventstream.NewTurnEvent(a.sessionID, string(a.mode), string(in), input, text, a.now())
	if err := a.publisher.PublishTurn(ctx, event); err != nil {
		a.logger.Warn("publish turn event", "event_id", event.EventID, "error", err)
	}
}

// Summarize returns the printable conversation summary.
func (a *Assistant) Summarize() string {
	return a.history.Summarize()
}

func (a *Assistant) History() []conversation.Interaction {
	return a.history.History()
}

func (a *Assistant) SessionID() string {
	return a.sessionID
}

func (a *Assistant) Mode() speech.Mode {
	return a.mode
}

// SetMode tags subsequent turn events with m.
func (a *Assistant) SetMode(m speech.Mode) {
	a.mode = m
}

// Close flushes and closes the event publisher.
func (a *Assistant) Close() error {
	return a.publisher.Close()
}
