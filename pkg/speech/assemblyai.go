package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AssemblyAI/assemblyai-go-sdk"
)

// TranscribeReaderFunc is the upload-and-wait call of the AssemblyAI client.
type TranscribeReaderFunc func(ctx context.Context, r io.Reader, params *assemblyai.TranscriptOptionalParams) (assemblyai.Transcript, error)

// AssemblyAITranscriber uploads each utterance and waits for the transcript.
type AssemblyAITranscriber struct {
	transcribe TranscribeReaderFunc
	language   string
}

func NewAssemblyAITranscriber(apiKey, language string) (*AssemblyAITranscriber, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: assemblyai api key not set", ErrUnavailable)
	}
	client := assemblyai.NewClient(apiKey)
	return NewAssemblyAITranscriberWithFunc(client.Transcripts.TranscribeFromReader, language), nil
}

func NewAssemblyAITranscriberWithFunc(fn TranscribeReaderFunc, language string) *AssemblyAITranscriber {
	return &AssemblyAITranscriber{transcribe: fn, language: assemblyLanguage(language)}
}

// assemblyLanguage maps a BCP-47 tag like en-US to AssemblyAI's en_us.
func assemblyLanguage(tag string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "-", "_"))
}

func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrUnintelligible
	}

	params := &assemblyai.TranscriptOptionalParams{}
	if t.language != "" {
		params.LanguageCode = assemblyai.TranscriptLanguageCode(t.language)
	}

	tr, err := t.transcribe(ctx, bytes.NewReader(audio), params)
	if err != nil {
		return "", fmt.Errorf("%w: assemblyai: %w", ErrService, err)
	}
	if tr.Status == assemblyai.TranscriptStatusError {
		return "", fmt.Errorf("%w: assemblyai: %s", ErrService, assemblyai.ToString(tr.Error))
	}

	text := strings.TrimSpace(assemblyai.ToString(tr.Text))
	if text == "" {
		return "", ErrUnintelligible
	}
	return text, nil
}

func (t *AssemblyAITranscriber) Close() error {
	return nil
}
