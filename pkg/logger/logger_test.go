package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/unibot/pkg/logger"
)

func decodeLine(buf *bytes.Buffer) map[string]any {
	var parsed map[string]any
	Expect(json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed)).To(Succeed())
	return parsed
}

var _ = Describe("Logger", func() {
	Describe("New", func() {
		It("writes text records with attributes", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf))
			l.Info("turn answered", "intent", "fees")

			Expect(buf.String()).To(ContainSubstring("turn answered"))
			Expect(buf.String()).To(ContainSubstring("intent=fees"))
		})

		It("drops debug records unless debug is enabled", func() {
			var quiet, loud bytes.Buffer
			logger.New(logger.WithWriter(&quiet)).Debug("hidden")
			logger.New(logger.WithWriter(&loud), logger.WithDebug(true)).Debug("shown")

			Expect(quiet.String()).To(BeEmpty())
			Expect(loud.String()).To(ContainSubstring("shown"))
		})

		It("emits JSON when requested", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true))
			l.Info("classified", "pattern", 2)

			parsed := decodeLine(&buf)
			Expect(parsed["msg"]).To(Equal("classified"))
			Expect(parsed["pattern"]).To(BeNumerically("==", 2))
		})

		It("prefers JSON over pretty output", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithPretty(true), logger.WithJSON(true))
			l.Info("structured")

			Expect(decodeLine(&buf)["msg"]).To(Equal("structured"))
		})

		It("renders pretty output through charmbracelet/log", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithPretty(true))
			l.Info("pretty output")

			Expect(buf.String()).To(ContainSubstring("pretty output"))
		})

		It("reports the caller when source is on", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true), logger.WithSource(true))
			l.Info("located")

			Expect(decodeLine(&buf)).To(HaveKey("source"))
		})

		It("binds fields and groups", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true))
			l.With("session", "s-1").WithGroup("turn").Info("recorded", "intent", "goodbye")

			parsed := decodeLine(&buf)
			Expect(parsed["session"]).To(Equal("s-1"))
			group, ok := parsed["turn"].(map[string]any)
			Expect(ok).To(BeTrue(), "expected 'turn' group in JSON output")
			Expect(group["intent"]).To(Equal("goodbye"))
		})
	})

	Describe("Nop", func() {
		It("discards everything", func() {
			l := logger.Nop()
			Expect(l.Handler().Enabled(context.Background(), slog.LevelError)).To(BeFalse())
			Expect(func() { l.With("k", "v").Error("msg") }).NotTo(Panic())
		})
	})

	Describe("Multi", func() {
		It("dispatches to all loggers", func() {
			var text, js bytes.Buffer
			multi := logger.Multi(
				logger.New(logger.WithWriter(&text)),
				logger.New(logger.WithWriter(&js), logger.WithJSON(true)),
			)
			multi.Info("broadcast", "key", "val")

			Expect(text.String()).To(ContainSubstring("broadcast"))
			Expect(decodeLine(&js)["key"]).To(Equal("val"))
		})

		It("carries With attributes to every child", func() {
			var buf bytes.Buffer
			multi := logger.Multi(logger.New(logger.WithWriter(&buf), logger.WithJSON(true)))
			multi.With("component", "chat").Info("hello")

			Expect(decodeLine(&buf)["component"]).To(Equal("chat"))
		})

		It("skips nil loggers", func() {
			Expect(func() { logger.Multi(nil, logger.Nop()).Info("x") }).NotTo(Panic())
		})

		It("is disabled when every child is disabled", func() {
			multi := logger.Multi(logger.Nop())
			Expect(multi.Handler().Enabled(context.Background(), slog.LevelInfo)).To(BeFalse())
		})
	})
})
