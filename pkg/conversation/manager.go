// Package conversation keeps the per-session history of answered turns.
package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/papercomputeco/unibot/pkg/intent"
)

// Interaction is one answered turn.
type Interaction struct {
	Timestamp time.Time     `json:"timestamp"`
	UserText  string        `json:"user_text"`
	BotText   string        `json:"bot_text"`
	Intent    intent.Intent `json:"intent"`
}

// Summary is the structured form of Summarize.
type Summary struct {
	Duration     time.Duration
	Interactions int
	Topics       []intent.Intent
	MostFrequent intent.Intent
}

// String renders the summary the way the chat loop prints it.
func (s Summary) String() string {
	topics := make([]string, len(s.Topics))
	for i, t := range s.Topics {
		topics[i] = string(t)
	}

	var b strings.Builder
	b.WriteString("Conversation Summary:\n")
	fmt.Fprintf(&b, "Duration: %d seconds\n", int64(s.Duration/time.Second))
	fmt.Fprintf(&b, "Total interactions: %d\n", s.Interactions)
	fmt.Fprintf(&b, "Topics discussed: %s\n", strings.Join(topics, ", "))
	fmt.Fprintf(&b, "Most discussed: %s", s.MostFrequent)
	return b.String()
}

// NoConversation is returned by Summarize before any turn is recorded.
const NoConversation = "No conversation yet."

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now for stamping turns and measuring duration.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Manager owns the ordered history for one session. It is not safe for
// concurrent use; a session handles one turn at a time.
type Manager struct {
	now          func() time.Time
	sessionStart time.Time
	history      []Interaction
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	m.sessionStart = m.now()
	return m
}

// Record appends a turn stamped with the current clock.
func (m *Manager) Record(userText, botText string, in intent.Intent) {
	m.history = append(m.history, Interaction{
		Timestamp: m.now(),
		UserText:  userText,
		BotText:   botText,
		Intent:    in,
	})
}

// Summary computes the session summary. The second return is false when
// nothing has been recorded yet.
func (m *Manager) Summary() (Summary, bool) {
	if len(m.history) == 0 {
		return Summary{}, false
	}

	counts := make(map[intent.Intent]int)
	var topics []intent.Intent
	for _, it := range m.history {
		if counts[it.Intent] == 0 {
			topics = append(topics, it.Intent)
		}
		counts[it.Intent]++
	}

	// Ties go to the intent seen first.
	most := topics[0]
	for _, t := range topics[1:] {
		if counts[t] > counts[most] {
			most = t
		}
	}

	duration := m.now().Sub(m.sessionStart)
	if duration < 0 {
		duration = 0
	}

	return Summary{
		Duration:     duration,
		Interactions: len(m.history),
		Topics:       topics,
		MostFrequent: most,
	}, true
}

// Summarize returns the printable summary, or NoConversation.
func (m *Manager) Summarize() string {
	s, ok := m.Summary()
	if !ok {
		return NoConversation
	}
	return s.String()
}

// History returns a copy of the recorded turns in order.
func (m *Manager) History() []Interaction {
	out := make([]Interaction, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Manager) Len() int {
	return len(m.history)
}

func (m *Manager) SessionStart() time.Time {
	return m.sessionStart
}
