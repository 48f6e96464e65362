package speech_test

import (
	"context"
	"errors"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/unibot/pkg/speech"
)

var _ = Describe("Prober", func() {
	var (
		onPath map[string]bool
		env    map[string]string
		files  map[string]bool
		p      *speech.Prober
	)

	BeforeEach(func() {
		onPath = map[string]bool{}
		env = map[string]string{}
		files = map[string]bool{}
		p = &speech.Prober{
			LookPath: func(file string) (string, error) {
				if onPath[file] {
					return "/usr/bin/" + file, nil
				}
				return "", errors.New("not found")
			},
			Getenv: func(k string) string { return env[k] },
			Stat: func(name string) (os.FileInfo, error) {
				if files[name] {
					return nil, nil
				}
				return nil, os.ErrNotExist
			},
		}
	})

	It("reports a bare host as not ready", func() {
		a := p.Probe(speech.Config{})
		Expect(a.Ready()).To(BeFalse())
		Expect(a.Reason()).To(ContainSubstring("arecord not found"))
		Expect(a.Checks()).To(HaveLen(3))
	})

	It("is ready with a recorder and google credentials", func() {
		onPath["arecord"] = true
		env["GOOGLE_APPLICATION_CREDENTIALS"] = "/etc/creds.json"
		files["/etc/creds.json"] = true

		a := p.Probe(speech.Config{Transcriber: speech.TranscriberGoogle})
		Expect(a.Ready()).To(BeTrue())
		Expect(a.Reason()).To(BeEmpty())
		Expect(a.Synthesizer.OK).To(BeFalse())
	})

	It("checks the configured commands", func() {
		onPath["rec"] = true
		onPath["say"] = true
		a := p.Probe(speech.Config{
			RecordCommand: "rec -q out.wav",
			SynthCommand:  "say -r 150",
			Transcriber:   speech.TranscriberAssemblyAI,
			AssemblyAIKey: "key",
		})
		Expect(a.Ready()).To(BeTrue())
		Expect(a.Synthesizer.Detail).To(Equal("/usr/bin/say"))
	})

	It("accepts gcloud application default credentials", func() {
		onPath["arecord"] = true
		env["HOME"] = "/home/student"
		files["/home/student/.config/gcloud/application_default_credentials.json"] = true

		a := p.Probe(speech.Config{})
		Expect(a.Ready()).To(BeTrue())
		Expect(a.Transcriber.Detail).To(ContainSubstring("application default credentials"))
	})

	It("prefers CLOUDSDK_CONFIG when locating application default credentials", func() {
		onPath["arecord"] = true
		env["HOME"] = "/home/student"
		env["CLOUDSDK_CONFIG"] = "/opt/gcloud"
		files["/opt/gcloud/application_default_credentials.json"] = true

		a := p.Probe(speech.Config{Transcriber: speech.TranscriberGoogle})
		Expect(a.Transcriber.OK).To(BeTrue())
		Expect(a.Transcriber.Detail).To(ContainSubstring("/opt/gcloud"))
	})

	It("reports google as unavailable without any credentials", func() {
		onPath["arecord"] = true
		env["HOME"] = "/home/student"

		a := p.Probe(speech.Config{})
		Expect(a.Ready()).To(BeFalse())
		Expect(a.Reason()).To(ContainSubstring("no credentials file configured"))
	})

	It("flags a missing credentials file", func() {
		onPath["arecord"] = true
		a := p.Probe(speech.Config{CredentialsFile: "/nope.json"})
		Expect(a.Transcriber.OK).To(BeFalse())
		Expect(a.Reason()).To(ContainSubstring("/nope.json"))
	})

	It("flags unknown transcribers", func() {
		a := p.Probe(speech.Config{Transcriber: "whisper"})
		Expect(a.Transcriber.Detail).To(ContainSubstring("whisper"))
	})
})

var _ = Describe("CommandRecorder", func() {
	It("captures stdout and substitutes the duration", func() {
		r := speech.NewCommandRecorder("printf RIFF{seconds}")
		audio, err := r.Record(context.Background(), 3*time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(audio)).To(Equal("RIFF3"))
	})

	It("treats no output as a timeout", func() {
		r := speech.NewCommandRecorder("true")
		_, err := r.Record(context.Background(), time.Second)
		Expect(err).To(MatchError(speech.ErrTimeout))
	})

	It("wraps failing programs as service errors", func() {
		r := speech.NewCommandRecorder("false")
		_, err := r.Record(context.Background(), time.Second)
		Expect(err).To(MatchError(speech.ErrService))
	})
})

var _ = Describe("CommandSynthesizer", func() {
	It("runs the configured program", func() {
		Expect(speech.NewCommandSynthesizer("true").Say(context.Background(), "hello")).To(Succeed())
	})

	It("reports program failures", func() {
		Expect(speech.NewCommandSynthesizer("false").Say(context.Background(), "hello")).NotTo(Succeed())
	})
})
