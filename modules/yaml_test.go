package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

func writeDefaults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeDefaults(t, `
endpoint: http://bot.internal:8001
apiKey: k1
secretKey: s1
symbol: ETHUSDT
buyQuantity: 1.5
sellQuantity: 2
maxPriceDeviation: 0.1
`)

	defaults, err := LoadDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, "http://bot.internal:8001", defaults.Endpoint)
	assert.Equal(t, "k1", defaults.ApiKey)
	assert.Equal(t, "ETHUSDT", defaults.Symbol)
	assert.Equal(t, 1.5, defaults.BuyQuantity)
	assert.Equal(t, 0.1, defaults.MaxPriceDeviation)
}

func TestLoadDefaultsFillsGaps(t *testing.T) {
	path := writeDefaults(t, "apiKey: k1\n")

	defaults, err := LoadDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultSymbol, defaults.Symbol)
	assert.Equal(t, models.DefaultMaxPriceDeviation, defaults.MaxPriceDeviation)
	assert.Equal(t, DefaultEndpoint, defaults.Endpoint)
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	_, err := LoadDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
