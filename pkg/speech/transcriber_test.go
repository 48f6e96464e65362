package speech_test

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/AssemblyAI/assemblyai-go-sdk"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/papercomputeco/unibot/pkg/speech"
)

func recognized(texts ...string) *speechpb.RecognizeResponse {
	resp := &speechpb.RecognizeResponse{}
	for _, t := range texts {
		resp.Results = append(resp.Results, &speechpb.SpeechRecognitionResult{
			Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: t}},
		})
	}
	return resp
}

var _ = Describe("GoogleTranscriber", func() {
	ctx := context.Background()

	It("joins the top alternative of each result", func() {
		var got *speechpb.RecognizeRequest
		t := speech.NewGoogleTranscriberWithFunc(func(_ context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			got = req
			return recognized("what are", " the fees "), nil
		}, speech.GoogleConfig{LanguageCode: "en-IN"})

		text, err := t.Transcribe(ctx, []byte("RIFF"))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("what are the fees"))
		Expect(got.GetConfig().GetLanguageCode()).To(Equal("en-IN"))
		Expect(got.GetConfig().GetSampleRateHertz()).To(Equal(int32(16000)))
		Expect(got.GetConfig().GetEncoding()).To(Equal(speechpb.RecognitionConfig_LINEAR16))
	})

	It("reports empty results as unintelligible", func() {
		t := speech.NewGoogleTranscriberWithFunc(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			return recognized(), nil
		}, speech.GoogleConfig{})
		_, err := t.Transcribe(ctx, []byte("RIFF"))
		Expect(err).To(MatchError(speech.ErrUnintelligible))
	})

	It("does not call the service for empty audio", func() {
		calls := 0
		t := speech.NewGoogleTranscriberWithFunc(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			calls++
			return recognized("x"), nil
		}, speech.GoogleConfig{})
		_, err := t.Transcribe(ctx, nil)
		Expect(err).To(MatchError(speech.ErrUnintelligible))
		Expect(calls).To(BeZero())
	})

	It("retries transient failures", func() {
		calls := 0
		t := speech.NewGoogleTranscriberWithFunc(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			calls++
			if calls == 1 {
				return nil, status.Error(codes.Unavailable, "try again")
			}
			return recognized("hello"), nil
		}, speech.GoogleConfig{})

		text, err := t.Transcribe(ctx, []byte("RIFF"))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("hello"))
		Expect(calls).To(Equal(2))
	})

	It("fails fast on permanent errors", func() {
		calls := 0
		t := speech.NewGoogleTranscriberWithFunc(func(context.Context, *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			calls++
			return nil, status.Error(codes.InvalidArgument, "bad audio")
		}, speech.GoogleConfig{})

		_, err := t.Transcribe(ctx, []byte("RIFF"))
		Expect(err).To(MatchError(speech.ErrService))
		Expect(calls).To(Equal(1))
		Expect(t.Close()).To(Succeed())
	})
})

var _ = Describe("AssemblyAITranscriber", func() {
	ctx := context.Background()

	It("returns the transcript text", func() {
		var lang assemblyai.TranscriptLanguageCode
		t := speech.NewAssemblyAITranscriberWithFunc(func(_ context.Context, r io.Reader, params *assemblyai.TranscriptOptionalParams) (assemblyai.Transcript, error) {
			body, _ := io.ReadAll(r)
			Expect(body).To(Equal([]byte("RIFF")))
			lang = params.LanguageCode
			return assemblyai.Transcript{Text: assemblyai.String(" hostel facilities ")}, nil
		}, "en-US")

		text, err := t.Transcribe(ctx, []byte("RIFF"))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("hostel facilities"))
		Expect(string(lang)).To(Equal("en_us"))
	})

	It("maps failed transcripts to service errors", func() {
		t := speech.NewAssemblyAITranscriberWithFunc(func(context.Context, io.Reader, *assemblyai.TranscriptOptionalParams) (assemblyai.Transcript, error) {
			return assemblyai.Transcript{Status: assemblyai.TranscriptStatusError, Error: assemblyai.String("bad file")}, nil
		}, "")
		_, err := t.Transcribe(ctx, []byte("RIFF"))
		Expect(err).To(MatchError(speech.ErrService))
		Expect(err).To(MatchError(ContainSubstring("bad file")))
	})

	It("maps transport errors to service errors", func() {
		t := speech.NewAssemblyAITranscriberWithFunc(func(context.Context, io.Reader, *assemblyai.TranscriptOptionalParams) (assemblyai.Transcript, error) {
			return assemblyai.Transcript{}, errors.New("401")
		}, "")
		_, err := t.Transcribe(ctx, []byte("RIFF"))
		Expect(err).To(MatchError(speech.ErrService))
	})

	It("reports empty text as unintelligible", func() {
		t := speech.NewAssemblyAITranscriberWithFunc(func(context.Context, io.Reader, *assemblyai.TranscriptOptionalParams) (assemblyai.Transcript, error) {
			return assemblyai.Transcript{}, nil
		}, "")
		_, err := t.Transcribe(ctx, []byte("RIFF"))
		Expect(err).To(MatchError(speech.ErrUnintelligible))
	})
})
