package analyzer

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sozercan/tokenscope/internal/llm"
	"github.com/sozercan/tokenscope/internal/speech"
	"github.com/sozercan/tokenscope/internal/tokendata"
)

type fakeSource struct {
	details *tokendata.Details
	err     error
	calls   []string
}

func (f *fakeSource) FetchTokenDetails(ctx context.Context, chain, address string) (*tokendata.Details, error) {
	f.calls = append(f.calls, chain+"/"+address)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

type llmCall struct {
	system  []string
	user    []string
	options llm.Options
}

type fakeProvider struct {
	content string
	err     error
	calls   []llmCall
}

func (f *fakeProvider) Complete(ctx context.Context, systemMessages []string, userMessages []string, opts ...llm.Option) (*llm.Response, error) {
	var options llm.Options
	for _, opt := range opts {
		opt(&options)
	}
	f.calls = append(f.calls, llmCall{system: systemMessages, user: userMessages, options: options})
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.content, Model: options.Model}, nil
}

type fakeSynthesizer struct {
	err   error
	calls []string
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) (*speech.Audio, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	return &speech.Audio{Base64: "SUQz", ID: "audio-1"}, nil
}

var errProvider = errors.New("provider unavailable")

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func cleanAudit() *tokendata.Audit {
	return &tokendata.Audit{
		IsOpenSource:        "yes",
		IsHoneypot:          "no",
		IsMintable:          "no",
		IsProxy:             "no",
		IsBlacklisted:       "no",
		IsContractRenounced: "yes",
		SellTax:             &tokendata.Tax{Min: dec("0"), Max: dec("0"), Status: "ok"},
	}
}

func risingPrice() *tokendata.Price {
	return &tokendata.Price{
		Price:        dec("0.00123"),
		Variation24h: dec("36.6"),
	}
}
