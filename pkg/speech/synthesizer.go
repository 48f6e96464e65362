package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Synthesizer turns text into audible speech.
type Synthesizer interface {
	Say(ctx context.Context, text string) error
}

// DefaultSynthCommand speaks at 150 words per minute and 80% amplitude.
const DefaultSynthCommand = "espeak -s 150 -a 80"

// CommandSynthesizer runs an external text-to-speech program with the text
// as its final argument.
type CommandSynthesizer struct {
	Command string
}

func NewCommandSynthesizer(command string) *CommandSynthesizer {
	if strings.TrimSpace(command) == "" {
		command = DefaultSynthCommand
	}
	return &CommandSynthesizer{Command: command}
}

func (s *CommandSynthesizer) Say(ctx context.Context, text string) error {
	args := strings.Fields(s.Command)
	if len(args) == 0 {
		return fmt.Errorf("empty synth command")
	}
	args = append(args, text)

	out, err := exec.CommandContext(ctx, args[0], args[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
