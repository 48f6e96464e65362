// Package respond turns a classified utterance into a templated answer
// drawn from the knowledge table.
package respond

import (
	"math/rand/v2"
	"strings"

	"github.com/papercomputeco/unibot/pkg/intent"
	"github.com/papercomputeco/unibot/pkg/knowledge"
)

// Chooser picks an index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
	IntN(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithChooser replaces the source used to vary greeting and goodbye lines.
func WithChooser(c Chooser) Option {
	return func(g *Generator) {
		if c != nil {
			g.chooser = c
		}
	}
}

// Generator builds answers. It keeps no per-conversation state; history
// belongs to the conversation package.
type Generator struct {
	kb      *knowledge.Store
	chooser Chooser
}

func NewGenerator(kb *knowledge.Store, opts ...Option) *Generator {
	g := &Generator{
		kb:      kb,
		chooser: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the answer for in given the raw user text. Unknown
// intents are answered like GeneralInfo.
func (g *Generator) Generate(in intent.Intent, rawText string) string {
	text := strings.ToLower(rawText)

	switch in {
	case intent.Greeting:
		return g.greeting()
	case intent.AdmissionInfo:
		return g.admissions(text)
	case intent.Courses:
		return g.courses(text)
	case intent.Fees:
		return g.fees()
	case intent.Placements:
		return g.placements()
	case intent.Facilities:
		return g.facilities(text)
	case intent.Contact:
		return g.contact()
	case intent.CampusLife:
		return g.campusLife()
	case intent.Goodbye:
		return g.goodbye()
	default:
		return g.general()
	}
}

// pick returns one of lines using the chooser, guarding against a chooser
// that strays out of range.
func (g *Generator) pick(lines []string) string {
	i := g.chooser.IntN(len(lines))
	if i < 0 || i >= len(lines) {
		i = 0
	}
	return lines[i]
}

// containsAny reports whether text contains any of words. Callers pass
// lowercased text.
func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
