package tokendata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/tokenscope/internal/config"
)

func TestCodexFetchTokenDetails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "codex-key", r.Header.Get("Authorization"))

		var body struct {
			OperationName string                 `json:"operationName"`
			Variables     map[string]interface{} `json:"variables"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "TokenPrice", body.OperationName)
		assert.Equal(t, "Mint111", body.Variables["address"])
		assert.Equal(t, float64(1399811149), body.Variables["networkId"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"getTokenPrices":[{"address":"Mint111","networkId":1399811149,"priceUsd":0.042,"timestamp":1733047200}]}}`))
	}))
	defer ts.Close()

	client, err := NewCodex(ts.URL, "codex-key", 5*time.Second)
	require.NoError(t, err)

	details, err := client.FetchTokenDetails(context.Background(), "solana", "Mint111")
	require.NoError(t, err)
	assert.Nil(t, details.Audit, "codex never returns an audit")
	require.NotNil(t, details.Price)
	assert.Equal(t, "0.042", details.Price.Price.String())
	require.NotNil(t, details.Price.UpdatedAt)
	assert.Equal(t, int64(1733047200), details.Price.UpdatedAt.Unix())
}

func TestCodexUnknownToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"getTokenPrices":[null]}}`))
	}))
	defer ts.Close()

	client, err := NewCodex(ts.URL, "codex-key", 5*time.Second)
	require.NoError(t, err)

	details, err := client.FetchTokenDetails(context.Background(), "solana", "Nope")
	require.NoError(t, err)
	assert.True(t, details.Empty())
}

func TestCodexUnsupportedChain(t *testing.T) {
	client, err := NewCodex("http://127.0.0.1:0", "codex-key", time.Second)
	require.NoError(t, err)

	_, err = client.FetchTokenDetails(context.Background(), "dogechain", "Mint111")
	assert.ErrorIs(t, err, ErrUnsupportedChain)
}

func TestCodexGraphQLError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"message":"invalid api key"}],"data":null}`))
	}))
	defer ts.Close()

	client, err := NewCodex(ts.URL, "bad", 5*time.Second)
	require.NoError(t, err)

	_, err = client.FetchTokenDetails(context.Background(), "solana", "Mint111")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestNewSelectsProvider(t *testing.T) {
	src, err := New(&config.TokenDataConfig{Provider: "dextools", Timeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &DEXTools{}, src)

	src, err = New(&config.TokenDataConfig{Provider: "Codex", Timeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &Codex{}, src)

	_, err = New(&config.TokenDataConfig{Provider: "birdeye"})
	assert.Error(t, err)
}
