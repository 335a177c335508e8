package tokendata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sozercan/tokenscope/internal/config"
)

const (
	ProviderDEXTools = "dextools"
	ProviderCodex    = "codex"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

// Source resolves a chain and token address to audit and price facts.
type Source interface {
	FetchTokenDetails(ctx context.Context, chain, address string) (*Details, error)
}

// Details pairs the optional audit and price sections for one token.
type Details struct {
	Audit *Audit `json:"audit,omitempty"`
	Price *Price `json:"price,omitempty"`
}

// Empty reports whether the provider knows nothing about the token.
func (d *Details) Empty() bool {
	return d == nil || (d.Audit == nil && d.Price == nil)
}

// Audit flags use the provider's "yes" / "no" / "unknown" vocabulary.
type Audit struct {
	IsOpenSource        string     `json:"isOpenSource,omitempty"`
	IsHoneypot          string     `json:"isHoneypot,omitempty"`
	IsMintable          string     `json:"isMintable,omitempty"`
	IsProxy             string     `json:"isProxy,omitempty"`
	SlippageModifiable  string     `json:"slippageModifiable,omitempty"`
	IsBlacklisted       string     `json:"isBlacklisted,omitempty"`
	IsContractRenounced string     `json:"isContractRenounced,omitempty"`
	IsPotentiallyScam   string     `json:"isPotentiallyScam,omitempty"`
	SellTax             *Tax       `json:"sellTax,omitempty"`
	BuyTax              *Tax       `json:"buyTax,omitempty"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

type Tax struct {
	Min    *decimal.Decimal `json:"min,omitempty"`
	Max    *decimal.Decimal `json:"max,omitempty"`
	Status string           `json:"status,omitempty"`
}

// Price holds the current USD price and its recent variation (percent).
type Price struct {
	Price        *decimal.Decimal `json:"price,omitempty"`
	PriceChain   *decimal.Decimal `json:"priceChain,omitempty"`
	Price5m      *decimal.Decimal `json:"price5m,omitempty"`
	Variation5m  *decimal.Decimal `json:"variation5m,omitempty"`
	Price1h      *decimal.Decimal `json:"price1h,omitempty"`
	Variation1h  *decimal.Decimal `json:"variation1h,omitempty"`
	Price6h      *decimal.Decimal `json:"price6h,omitempty"`
	Variation6h  *decimal.Decimal `json:"variation6h,omitempty"`
	Price24h     *decimal.Decimal `json:"price24h,omitempty"`
	Variation24h *decimal.Decimal `json:"variation24h,omitempty"`
	UpdatedAt    *time.Time       `json:"updatedAt,omitempty"`
}

// New builds the Source selected by cfg.Provider.
func New(cfg *config.TokenDataConfig) (Source, error) {
	slog.Info("Creating token data client", "provider", cfg.Provider, "endpoint", cfg.Endpoint)

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderDEXTools:
		return NewDEXTools(cfg.Endpoint, cfg.APIKey, cfg.Timeout)
	case ProviderCodex:
		return NewCodex(cfg.Endpoint, cfg.APIKey, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown token data provider %q", cfg.Provider)
	}
}
