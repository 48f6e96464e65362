// Package speech moves text across the user boundary: typed lines on a
// console, or recorded audio through a transcriber and back out through a
// synthesizer.
package speech

import (
	"context"
	"errors"
	"time"
)

// Mode names the channel a session is using.
type Mode string

const (
	ModeText  Mode = "text"
	ModeVoice Mode = "voice"
)

// DefaultListenTimeout bounds a single Listen call in voice mode.
const DefaultListenTimeout = 5 * time.Second

var (
	// ErrTimeout means nothing was heard before the listen timeout.
	ErrTimeout = errors.New("no speech detected within timeout")

	// ErrUnintelligible means audio was captured but produced no text.
	ErrUnintelligible = errors.New("could not understand audio")

	// ErrService wraps failures of the recorder or the recognition backend.
	ErrService = errors.New("speech recognition service error")

	// ErrUnavailable is returned when voice mode cannot be built.
	ErrUnavailable = errors.New("voice features not available")
)

// IO obtains user text and delivers assistant text.
type IO interface {
	// Listen blocks for one utterance. Callers treat any error as "no text";
	// io.EOF ends a console session.
	Listen(ctx context.Context, timeout time.Duration) (string, error)

	// Speak delivers text. Output problems are logged, never returned.
	Speak(ctx context.Context, text string)

	Mode() Mode
}

// Message returns the line shown to the user for a Listen error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "⏰ No speech detected within timeout"
	case errors.Is(err, ErrUnintelligible):
		return "❌ Could not understand audio"
	default:
		return "❌ " + err.Error()
	}
}
