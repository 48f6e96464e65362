package assistant_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/unibot/pkg/assistant"
	"github.com/papercomputeco/unibot/pkg/knowledge"
	"github.com/papercomputeco/unibot/pkg/speech"
)

var _ = Describe("Session", func() {
	var (
		out *bytes.Buffer
		pub *recordingPublisher
		a   *assistant.Assistant
		ctx context.Context
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		pub = &recordingPublisher{}
		a = assistant.New(knowledge.Default(), assistant.WithPublisher(pub))
		ctx = context.Background()
	})

	run := func(cfg assistant.SessionConfig) {
		cfg.Out = out
		Expect(assistant.NewSession(a, cfg).Run(ctx)).To(Succeed())
	}

	It("answers typed questions until quit", func() {
		console := speech.NewConsole(strings.NewReader("hello\n\nwhat are the fees\nsummary\nquit\nnever read\n"), out)
		run(assistant.SessionConfig{Console: console, FollowUp: true})

		s := out.String()
		Expect(s).To(ContainSubstring(assistant.Title))
		Expect(s).To(ContainSubstring("How can I assist you today?"))
		Expect(s).To(ContainSubstring("MRU Fee Structure"))
		Expect(s).To(ContainSubstring("Total interactions: 2"))
		Expect(s).To(ContainSubstring(assistant.FollowUpPrompt))
		Expect(s).To(HaveSuffix(assistant.FarewellMessage + "\n"))
		Expect(a.History()).To(HaveLen(2))
	})

	It("omits the follow-up after goodbye", func() {
		console := speech.NewConsole(strings.NewReader("thank you\n"), out)
		run(assistant.SessionConfig{Console: console, FollowUp: true})
		Expect(out.String()).NotTo(ContainSubstring(assistant.FollowUpPrompt))
	})

	It("ends with a farewell at end of input", func() {
		console := speech.NewConsole(strings.NewReader("help\n"), out)
		run(assistant.SessionConfig{Console: console})
		Expect(out.String()).To(ContainSubstring("Say 'summary' for conversation summary"))
		Expect(out.String()).To(ContainSubstring(assistant.FarewellMessage))
	})

	It("reports when voice cannot be enabled", func() {
		console := speech.NewConsole(strings.NewReader("voice\nquit\n"), out)
		run(assistant.SessionConfig{Console: console})
		Expect(out.String()).To(ContainSubstring("Could not enable voice mode: voice features not available"))
	})

	It("falls back to text when voice cannot start", func() {
		console := speech.NewConsole(strings.NewReader("quit\n"), out)
		run(assistant.SessionConfig{
			Console:    console,
			StartVoice: true,
			OpenVoice: func(context.Context) (speech.IO, error) {
				return nil, speech.ErrUnavailable
			},
		})
		Expect(out.String()).To(ContainSubstring(assistant.VoiceFallback))
	})

	It("switches between voice and text", func() {
		voice := &scriptedIO{
			mode:   speech.ModeVoice,
			errs:   []error{speech.ErrTimeout},
			inputs: []string{"tell me about placements", "text"},
		}
		console := speech.NewConsole(strings.NewReader("voice\nquit\n"), out)
		run(assistant.SessionConfig{
			Console:  console,
			FollowUp: true,
			OpenVoice: func(context.Context) (speech.IO, error) {
				return voice, nil
			},
		})

		Expect(voice.said).To(HaveLen(2))
		Expect(voice.said[0]).To(Equal(assistant.VoiceEnabledMessage))
		Expect(voice.said[1]).To(ContainSubstring("MRU Placement Highlights"))
		Expect(voice.closed).To(BeTrue())
		Expect(out.String()).NotTo(ContainSubstring(assistant.FollowUpPrompt))
		Expect(out.String()).To(ContainSubstring("No speech detected within timeout"))
		Expect(out.String()).To(ContainSubstring(assistant.TextSwitchedMessage))
		Expect(out.String()).To(ContainSubstring(assistant.VoicePrompt))
		Expect(pub.events).To(HaveLen(1))
		Expect(pub.events[0].Mode).To(Equal("voice"))
	})

	It("stops cleanly when cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		voice := &scriptedIO{mode: speech.ModeVoice, errs: []error{errors.New("ignored")}}
		cancel()
		err := assistant.NewSession(a, assistant.SessionConfig{
			Console: voice,
			Out:     out,
		}).Run(cctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring(assistant.StoppedMessage))
	})

	It("apologizes and keeps going when listening panics", func() {
		voice := &faultyIO{scriptedIO: scriptedIO{mode: speech.ModeVoice, inputs: []string{"quit"}}}
		console := speech.NewConsole(strings.NewReader(""), out)
		run(assistant.SessionConfig{
			Console:    console,
			StartVoice: true,
			OpenVoice: func(context.Context) (speech.IO, error) {
				return voice, nil
			},
		})

		Expect(voice.said).To(ContainElement("Sorry, I encountered an error: transcriber exploded. Please try again."))
		Expect(voice.said[len(voice.said)-1]).To(Equal(assistant.FarewellMessage))
		Expect(a.History()).To(BeEmpty())
	})

	It("apologizes when speaking the answer panics", func() {
		voice := &faultyIO{
			scriptedIO: scriptedIO{mode: speech.ModeVoice, inputs: []string{"what are the fees", "quit"}},
			speakPanic: "Fee Structure",
		}
		voice.listened = true
		console := speech.NewConsole(strings.NewReader(""), out)
		run(assistant.SessionConfig{
			Console:    console,
			StartVoice: true,
			OpenVoice: func(context.Context) (speech.IO, error) {
				return voice, nil
			},
		})

		Expect(voice.said).To(ContainElement("Sorry, I encountered an error: speaker unplugged. Please try again."))
		Expect(voice.said[len(voice.said)-1]).To(Equal(assistant.FarewellMessage))
	})

	It("requires a console", func() {
		Expect(assistant.NewSession(a, assistant.SessionConfig{}).Run(ctx)).NotTo(Succeed())
	})
})
