package assistant_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/unibot/pkg/assistant"
	"github.com/papercomputeco/unibot/pkg/eventstream"
	"github.com/papercomputeco/unibot/pkg/intent"
	"github.com/papercomputeco/unibot/pkg/knowledge"
	"github.com/papercomputeco/unibot/pkg/speech"
)

var _ = Describe("Assistant", func() {
	var (
		pub *recordingPublisher
		a   *assistant.Assistant
		ctx context.Context
		now time.Time
	)

	BeforeEach(func() {
		pub = &recordingPublisher{}
		now = time.Date(2025, 4, 20, 9, 0, 0, 0, time.UTC)
		a = assistant.New(knowledge.Default(),
			assistant.WithPublisher(pub),
			assistant.WithSessionID("session-1"),
			assistant.WithClock(func() time.Time { return now }),
		)
		ctx = context.Background()
	})

	It("classifies, answers, records and publishes a turn", func() {
		reply := a.Respond(ctx, "What are the fees for B.Tech?")
		Expect(reply.Skipped).To(BeFalse())
		Expect(reply.Failed).To(BeFalse())
		Expect(reply.Intent).To(Equal(intent.Fees))
		Expect(reply.Text).To(ContainSubstring("INR 1.82 - 2.44 Lakhs"))

		h := a.History()
		Expect(h).To(HaveLen(1))
		Expect(h[0].UserText).To(Equal("What are the fees for B.Tech?"))
		Expect(h[0].Intent).To(Equal(intent.Fees))

		Expect(pub.events).To(HaveLen(1))
		e := pub.events[0]
		Expect(e.SessionID).To(Equal("session-1"))
		Expect(e.Intent).To(Equal("fees"))
		Expect(e.Mode).To(Equal("text"))
		Expect(e.EventType).To(Equal(eventstream.EventTypeTurnRecorded))
		Expect(e.EmittedAt).To(Equal(now))
	})

	It("skips blank input without recording", func() {
		for _, in := range []string{"", "   ", "\t\n"} {
			reply := a.Respond(ctx, in)
			Expect(reply.Skipped).To(BeTrue())
		}
		Expect(a.History()).To(BeEmpty())
		Expect(pub.events).To(BeEmpty())
		Expect(a.Summarize()).To(Equal("No conversation yet."))
	})

	It("falls back to general_info", func() {
		reply := a.Respond(ctx, "asdfgh")
		Expect(reply.Intent).To(Equal(intent.GeneralInfo))
		Expect(reply.Text).To(ContainSubstring("About Manav Rachna University"))
	})

	It("turns a failing turn into an apology", func() {
		a = assistant.New(knowledge.Default(), assistant.WithPublisher(pub), assistant.WithResponder(panickingResponder{}))
		reply := a.Respond(ctx, "hello")
		Expect(reply.Failed).To(BeTrue())
		Expect(reply.Text).To(Equal("Sorry, I encountered an error: boom. Please try again."))
		Expect(a.History()).To(BeEmpty())
		Expect(pub.events).To(BeEmpty())
	})

	It("keeps answering when publishing fails", func() {
		pub.err = errors.New("broker down")
		reply := a.Respond(ctx, "hello")
		Expect(reply.Intent).To(Equal(intent.Greeting))
		Expect(a.History()).To(HaveLen(1))
	})

	It("tags events with the current mode", func() {
		a.SetMode(speech.ModeVoice)
		a.Respond(ctx, "placements")
		Expect(pub.events[0].Mode).To(Equal("voice"))
		Expect(a.Mode()).To(Equal(speech.ModeVoice))
	})

	It("summarizes the session", func() {
		a.Respond(ctx, "hello")
		a.Respond(ctx, "fees")
		a.Respond(ctx, "tuition cost")
		a.Respond(ctx, "bye")
		Expect(a.Summarize()).To(ContainSubstring("Topics discussed: greeting, fees, goodbye"))
		Expect(a.Summarize()).To(ContainSubstring("Most discussed: fees"))
	})

	It("generates a session id by default and closes the publisher", func() {
		b := assistant.New(knowledge.Default(), assistant.WithPublisher(pub))
		Expect(b.SessionID()).NotTo(BeEmpty())
		Expect(b.Close()).To(Succeed())
		Expect(pub.closed).To(BeTrue())
	})

	It("works without a knowledge table", func() {
		b := assistant.New(nil)
		Expect(func() { b.Respond(ctx, "what are the fees") }).NotTo(Panic())
	})
})

var _ = DescribeTable("ParseCommand",
	func(in string, want assistant.Command, ok bool) {
		got, matched := assistant.ParseCommand(in)
		Expect(matched).To(Equal(ok))
		Expect(got).To(Equal(want))
	},
	Entry("quit", "quit", assistant.CommandQuit, true),
	Entry("exit", "EXIT", assistant.CommandQuit, true),
	Entry("stop", " stop ", assistant.CommandQuit, true),
	Entry("end", "End", assistant.CommandQuit, true),
	Entry("help", "help", assistant.CommandHelp, true),
	Entry("voice", "Voice", assistant.CommandVoice, true),
	Entry("text", "text\n", assistant.CommandText, true),
	Entry("summary", "summary", assistant.CommandSummary, true),
	Entry("a question mentioning quit", "how do I quit smoking", assistant.CommandNone, false),
	Entry("empty", "", assistant.CommandNone, false),
)
