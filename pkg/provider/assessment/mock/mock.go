// Package mock provides test doubles for the assessment package interfaces.
//
// Use Provider to feed controlled scores and per-word detail to the scoring
// flow and to inspect which reference text the caller supplied.
package mock

import (
	"context"
	"sync"

	"github.com/lexiclash/lexiclash/pkg/provider/assessment"
)

// AssessCall records a single invocation of Provider.Assess.
type AssessCall struct {
	// Ctx is the context passed to Assess.
	Ctx context.Context
	// Audio is a copy of the audio bytes passed to Assess.
	Audio []byte
	// ReferenceText is the reference phrase passed to Assess.
	ReferenceText string
	// Cfg is the Config passed to Assess.
	Cfg assessment.Config
}

// Provider is a mock implementation of assessment.Provider.
type Provider struct {
	mu sync.Mutex

	// Result is returned by every successful Assess call. If nil, Assess
	// returns an empty Result.
	Result *assessment.Result

	// AssessErr, if non-nil, is returned as the error from Assess.
	AssessErr error

	// AssessCalls records every call to Assess in order.
	AssessCalls []AssessCall
}

// Assess records the call and returns Result, AssessErr.
func (p *Provider) Assess(ctx context.Context, audio []byte, referenceText string, cfg assessment.Config) (*assessment.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]byte, len(audio))
	copy(cp, audio)
	p.AssessCalls = append(p.AssessCalls, AssessCall{
		Ctx:           ctx,
		Audio:         cp,
		ReferenceText: referenceText,
		Cfg:           cfg,
	})
	if p.AssessErr != nil {
		return nil, p.AssessErr
	}
	if p.Result != nil {
		return p.Result, nil
	}
	return &assessment.Result{}, nil
}

// CallCount returns the number of Assess calls. Thread-safe.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.AssessCalls)
}

// Reset clears all recorded calls. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.AssessCalls = nil
}

// Ensure Provider implements assessment.Provider at compile time.
var _ assessment.Provider = (*Provider)(nil)
