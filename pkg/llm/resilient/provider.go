package resilient

import (
	"context"
	"time"

	"ai-legalaid-be/pkg/llm"

	"github.com/cenkalti/backoff/v4"
)

// Provider decorates an LLMProvider with a per-call timeout and bounded
// exponential-backoff retry, so gateway hiccups degrade into a typed error
// instead of a hung or crashed request.
type Provider struct {
	inner       llm.LLMProvider
	maxRetries  uint64
	callTimeout time.Duration
}

var _ llm.LLMProvider = &Provider{}

func Wrap(inner llm.LLMProvider, maxRetries uint64, callTimeout time.Duration) *Provider {
	return &Provider{
		inner:       inner,
		maxRetries:  maxRetries,
		callTimeout: callTimeout,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	var reply string

	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
		defer cancel()

		out, err := p.inner.Chat(callCtx, history, opts...)
		if err != nil {
			return err
		}
		reply = out
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.maxRetries),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return reply, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
