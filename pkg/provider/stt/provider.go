// Package stt defines the Provider interface for speech-to-text backends.
//
// An STT provider wraps a recognition service (e.g., Deepgram, Google
// Speech-to-Text, or a local Whisper server) and exposes a uniform one-shot
// interface: a complete spoken attempt goes in, an ordered word sequence with
// per-word confidences and timings comes out. Audio decoding and format
// validation are the provider's concern — the scoring engine treats audio as
// opaque bytes.
//
// Implementations must be safe for concurrent use; multiple attempts may be
// recognised simultaneously (one per player in a battle).
package stt

import (
	"context"

	"github.com/lexiclash/lexiclash/pkg/types"
)

// RecognizeConfig describes the audio format and recognition hints for a
// single recognition request.
type RecognizeConfig struct {
	// Language is the BCP-47 language tag for recognition (e.g., "th-TH",
	// "ja-JP"). An empty string lets the provider auto-detect, if supported.
	Language string

	// SampleRate is the audio sample rate in Hz. Zero lets the provider
	// derive it from the container format.
	SampleRate int

	// ReferenceText optionally biases recognition towards the expected
	// phrase. Providers that do not support phrase hints ignore it.
	ReferenceText string
}

// Provider is the abstraction over any one-shot STT backend.
type Provider interface {
	// Recognize transcribes a complete spoken attempt and returns the
	// ordered word sequence with per-word confidence and timing.
	//
	// Returns an error if the provider cannot process the audio (e.g.,
	// authentication failure, unsupported format, or ctx already cancelled).
	// A successful call may still return a transcript with no words when
	// nothing intelligible was spoken.
	Recognize(ctx context.Context, audio []byte, cfg RecognizeConfig) (types.Transcript, error)
}
