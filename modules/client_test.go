package modules

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/ratelimit"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

func newTestClient(server *httptest.Server) *BotClient {
	return NewBotClient(server.URL, quietLogger(), ratelimit.NewUnlimited())
}

func TestStatusParsesStringPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, apiBotStatus, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"running": true,
			"symbol": "BTCUSDT",
			"best_bid": "100.50",
			"best_ask": "100.60",
			"spread": "0.10",
			"initial_price": "100.55",
			"current_buy_order": {"price": "100.51", "orderId": "b-1"},
			"current_sell_order": null
		}`))
	}))
	defer server.Close()

	snapshot, err := newTestClient(server).Status()
	require.NoError(t, err)

	assert.True(t, snapshot.Running)
	assert.Equal(t, "BTCUSDT", snapshot.Symbol)
	require.NotNil(t, snapshot.BestBid)
	assert.True(t, decimal.RequireFromString("100.50").Equal(*snapshot.BestBid))
	require.NotNil(t, snapshot.Spread)
	assert.True(t, decimal.RequireFromString("0.10").Equal(*snapshot.Spread))
	require.NotNil(t, snapshot.CurrentBuyOrder)
	assert.Equal(t, "b-1", snapshot.CurrentBuyOrder.OrderID)
	assert.Nil(t, snapshot.CurrentSellOrder)
}

func TestStatusKeepsZeroValuedFields(t *testing.T) {
	// a zero bid is a value, not an absent field
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"running": true, "best_bid": 0}`))
	}))
	defer server.Close()

	snapshot, err := newTestClient(server).Status()
	require.NoError(t, err)

	require.NotNil(t, snapshot.BestBid)
	assert.True(t, snapshot.BestBid.IsZero())
	assert.Nil(t, snapshot.BestAsk)
}

func TestStatusMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server).Status()
	assert.Error(t, err)
}

func TestStartSendsFullConfiguration(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, apiStartBot, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"status": "success"}`))
	}))
	defer server.Close()

	err := newTestClient(server).Start(models.Configuration{
		ApiKey:            "k1",
		SecretKey:         "s1",
		Symbol:            "ETHUSDT",
		BuyQuantity:       1.5,
		SellQuantity:      2,
		MaxPriceDeviation: 0.05,
	})
	require.NoError(t, err)

	assert.Equal(t, "k1", received["api_key"])
	assert.Equal(t, "s1", received["secret_key"])
	assert.Equal(t, "ETHUSDT", received["symbol"])
	assert.Equal(t, 1.5, received["buy_quantity"])
	assert.Equal(t, 2.0, received["sell_quantity"])
	assert.Equal(t, 0.05, received["max_price_deviation"])
}

func TestStartRemoteRejectionCarriesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "invalid symbol"}`))
	}))
	defer server.Close()

	err := newTestClient(server).Start(models.Configuration{ApiKey: "k", SecretKey: "s"})

	var rejection *RemoteRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusBadRequest, rejection.Status)
	assert.Equal(t, "invalid symbol", rejection.Detail)
}

func TestRejectionDetailFallsBack(t *testing.T) {
	assert.Equal(t, "boom", rejectionDetail(http.StatusInternalServerError, []byte("boom")))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), rejectionDetail(http.StatusInternalServerError, nil))
}

func TestStopHitsStopEndpoint(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{"status": "success"}`))
	}))
	defer server.Close()

	require.NoError(t, newTestClient(server).Stop())
	assert.Equal(t, apiStopBot, path)
}

func TestTransportFailure(t *testing.T) {
	client := NewBotClient("http://127.0.0.1:1", quietLogger(), ratelimit.NewUnlimited())

	err := client.Start(models.Configuration{ApiKey: "k", SecretKey: "s"})

	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, apiHealth, r.URL.Path)
		w.Write([]byte(`{"status": "healthy", "message": "MEXC Trading Bot API is running"}`))
	}))
	defer server.Close()

	health, err := newTestClient(server).Health()
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
}

func TestEndpointFromEnv(t *testing.T) {
	t.Setenv(EndpointEnv, "http://example:9000")
	assert.Equal(t, "http://example:9000", EndpointFromEnv())

	t.Setenv(EndpointEnv, "")
	assert.Equal(t, DefaultEndpoint, EndpointFromEnv())
}
