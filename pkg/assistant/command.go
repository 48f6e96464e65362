package assistant

import "strings"

// Command is a control word typed or spoken instead of a question.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandHelp
	CommandVoice
	CommandText
	CommandSummary
)

var commandWords = map[string]Command{
	"quit":    CommandQuit,
	"exit":    CommandQuit,
	"stop":    CommandQuit,
	"end":     CommandQuit,
	"help":    CommandHelp,
	"voice":   CommandVoice,
	"text":    CommandText,
	"summary": CommandSummary,
}

// ParseCommand matches the whole trimmed input, case-insensitively.
func ParseCommand(text string) (Command, bool) {
	cmd, ok := commandWords[strings.ToLower(strings.TrimSpace(text))]
	return cmd, ok
}

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandHelp:
		return "help"
	case CommandVoice:
		return "voice"
	case CommandText:
		return "text"
	case CommandSummary:
		return "summary"
	default:
		return "none"
	}
}
