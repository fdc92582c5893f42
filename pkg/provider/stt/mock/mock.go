// Package mock provides test doubles for the stt package interfaces.
//
// Use Provider to feed a controlled transcript to the scoring flow and to
// inspect which audio and configuration the caller supplied.
//
// Example:
//
//	p := &mock.Provider{
//	    Transcript: types.Transcript{Words: []types.WordToken{{Text: "สวัสดี", Confidence: 0.9}}},
//	}
//	tr, _ := p.Recognize(ctx, audio, cfg)
package mock

import (
	"context"
	"sync"

	"github.com/lexiclash/lexiclash/pkg/provider/stt"
	"github.com/lexiclash/lexiclash/pkg/types"
)

// RecognizeCall records a single invocation of Provider.Recognize.
type RecognizeCall struct {
	// Ctx is the context passed to Recognize.
	Ctx context.Context
	// Audio is a copy of the audio bytes passed to Recognize.
	Audio []byte
	// Cfg is the RecognizeConfig passed to Recognize.
	Cfg stt.RecognizeConfig
}

// Provider is a mock implementation of stt.Provider.
type Provider struct {
	mu sync.Mutex

	// Transcript is returned by every successful Recognize call.
	Transcript types.Transcript

	// RecognizeErr, if non-nil, is returned as the error from Recognize.
	RecognizeErr error

	// RecognizeCalls records every call to Recognize in order.
	RecognizeCalls []RecognizeCall
}

// Recognize records the call and returns Transcript, RecognizeErr.
func (p *Provider) Recognize(ctx context.Context, audio []byte, cfg stt.RecognizeConfig) (types.Transcript, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]byte, len(audio))
	copy(cp, audio)
	p.RecognizeCalls = append(p.RecognizeCalls, RecognizeCall{Ctx: ctx, Audio: cp, Cfg: cfg})
	if p.RecognizeErr != nil {
		return types.Transcript{}, p.RecognizeErr
	}
	return p.Transcript, nil
}

// CallCount returns the number of Recognize calls. Thread-safe.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.RecognizeCalls)
}

// Reset clears all recorded calls. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RecognizeCalls = nil
}

// Ensure Provider implements stt.Provider at compile time.
var _ stt.Provider = (*Provider)(nil)
