package tokendata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const DefaultDEXToolsEndpoint = "https://public-api.dextools.io/trial/v2"

// DEXTools reads token audits and prices from the DEXTools v2 REST API.
type DEXTools struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type dextoolsEnvelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

func NewDEXTools(endpoint, apiKey string, timeout time.Duration) (*DEXTools, error) {
	if endpoint == "" {
		endpoint = DefaultDEXToolsEndpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid DEXTools endpoint: %w", err)
	}

	return &DEXTools{
		baseURL: strings.TrimRight(endpoint, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// FetchTokenDetails requests the audit and the price concurrently. A section
// the provider has no record of is left nil; any transport or HTTP error
// fails the whole fetch.
func (d *DEXTools) FetchTokenDetails(ctx context.Context, chain, address string) (*Details, error) {
	var details Details

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var audit Audit
		found, err := d.get(gctx, chain, address, "audit", &audit)
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}
		if found {
			details.Audit = &audit
		}
		return nil
	})
	g.Go(func() error {
		var price Price
		found, err := d.get(gctx, chain, address, "price", &price)
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		if found {
			details.Price = &price
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Fetched token details", "chain", chain, "address", address,
		"audit", details.Audit != nil, "price", details.Price != nil)
	return &details, nil
}

func (d *DEXTools) get(ctx context.Context, chain, address, section string, out any) (bool, error) {
	endpoint := fmt.Sprintf("%s/token/%s/%s/%s", d.baseURL, url.PathEscape(chain), url.PathEscape(address), section)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-KEY", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("DEXTools API error: HTTP %d", resp.StatusCode)
	}

	var env dextoolsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return false, fmt.Errorf("failed to decode DEXTools response: %w", err)
	}

	if isEmptyJSON(env.Data) {
		return false, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return false, fmt.Errorf("failed to decode DEXTools %s: %w", section, err)
	}
	return true, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}
