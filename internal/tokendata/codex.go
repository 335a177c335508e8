package tokendata

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Khan/genqlient/graphql"
	"github.com/shopspring/decimal"
)

const DefaultCodexEndpoint = "https://graph.codex.io/graphql"

// codexNetworks maps chain names to Codex network ids.
var codexNetworks = map[string]int{
	"solana":   1399811149,
	"ether":    1,
	"ethereum": 1,
	"bsc":      56,
	"polygon":  137,
	"arbitrum": 42161,
	"base":     8453,
}

const tokenPriceQuery = `query TokenPrice($address: String!, $networkId: Int!) {
  getTokenPrices(inputs: [{ address: $address, networkId: $networkId }]) {
    address
    networkId
    priceUsd
    timestamp
  }
}`

// Codex is a price-only Source backed by the Codex GraphQL API. It never
// returns an audit section.
type Codex struct {
	client graphql.Client
}

type codexPrice struct {
	Address   string           `json:"address"`
	NetworkID int              `json:"networkId"`
	PriceUSD  *decimal.Decimal `json:"priceUsd"`
	Timestamp *int64           `json:"timestamp"`
}

type tokenPriceResponse struct {
	GetTokenPrices []*codexPrice `json:"getTokenPrices"`
}

// apiKeyDoer attaches the Codex API key to every GraphQL request.
type apiKeyDoer struct {
	apiKey string
	client *http.Client
}

func (d *apiKeyDoer) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", d.apiKey)
	return d.client.Do(req)
}

func NewCodex(endpoint, apiKey string, timeout time.Duration) (*Codex, error) {
	if endpoint == "" {
		endpoint = DefaultCodexEndpoint
	}

	doer := &apiKeyDoer{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}

	return &Codex{
		client: graphql.NewClient(endpoint, doer),
	}, nil
}

func (c *Codex) FetchTokenDetails(ctx context.Context, chain, address string) (*Details, error) {
	networkID, ok := codexNetworks[strings.ToLower(chain)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChain, chain)
	}

	req := &graphql.Request{
		OpName: "TokenPrice",
		Query:  tokenPriceQuery,
		Variables: map[string]interface{}{
			"address":   address,
			"networkId": networkID,
		},
	}

	var data tokenPriceResponse
	resp := &graphql.Response{Data: &data}
	if err := c.client.MakeRequest(ctx, req, resp); err != nil {
		slog.Error("Codex price query failed", "error", err)
		return nil, err
	}

	details := &Details{}
	for _, p := range data.GetTokenPrices {
		if p == nil || p.PriceUSD == nil {
			continue
		}
		price := &Price{Price: p.PriceUSD}
		if p.Timestamp != nil {
			ts := time.Unix(*p.Timestamp, 0).UTC()
			price.UpdatedAt = &ts
		}
		details.Price = price
		break
	}

	return details, nil
}
