package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	gspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Transcriber converts captured audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Close() error
}

// RecognizeFunc is the synchronous recognition call of the Cloud Speech client.
type RecognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// GoogleConfig selects credentials and language for Cloud Speech.
type GoogleConfig struct {
	CredentialsFile string
	LanguageCode    string
	SampleRateHertz int32
}

// GoogleTranscriber recognizes short LINEAR16 utterances with Cloud Speech.
type GoogleTranscriber struct {
	recognize  RecognizeFunc
	closer     func() error
	cfg        GoogleConfig
	maxRetries int
	backoff    time.Duration
}

// NewGoogleTranscriber dials Cloud Speech. Without a credentials file the
// client falls back to application default credentials.
func NewGoogleTranscriber(ctx context.Context, cfg GoogleConfig) (*GoogleTranscriber, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gspeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: speech client: %w", ErrService, err)
	}

	t := NewGoogleTranscriberWithFunc(func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return client.Recognize(ctx, req)
	}, cfg)
	t.closer = client.Close
	return t, nil
}

// NewGoogleTranscriberWithFunc builds a transcriber around an existing
// recognize call.
func NewGoogleTranscriberWithFunc(fn RecognizeFunc, cfg GoogleConfig) *GoogleTranscriber {
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en-US"
	}
	if cfg.SampleRateHertz <= 0 {
		cfg.SampleRateHertz = 16000
	}
	return &GoogleTranscriber{
		recognize:  fn,
		cfg:        cfg,
		maxRetries: 2,
		backoff:    500 * time.Millisecond,
	}
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrUnintelligible
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            t.cfg.SampleRateHertz,
			LanguageCode:               t.cfg.LanguageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := t.retry(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: recognize: %w", ErrService, err)
	}

	var parts []string
	for _, res := range resp.GetResults() {
		alts := res.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if s := strings.TrimSpace(alts[0].GetTranscript()); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", ErrUnintelligible
	}
	return strings.Join(parts, " "), nil
}

// retry repeats transient failures with a doubling backoff.
func (t *GoogleTranscriber) retry(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	backoff := t.backoff
	var last error
	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := t.recognize(ctx, req)
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, err
		}
		if attempt == t.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, last
}

func (t *GoogleTranscriber) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer()
}
