package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

func TestConfigDefaults(t *testing.T) {
	m := NewConfigModel()

	cfg := m.Snapshot()
	assert.Equal(t, models.DefaultSymbol, cfg.Symbol)
	assert.Equal(t, models.DefaultMaxPriceDeviation, cfg.MaxPriceDeviation)
	assert.Empty(t, cfg.ApiKey)
}

func TestUpdateCoercesNumericFields(t *testing.T) {
	m := NewConfigModel()

	m.Update(FieldBuyQuantity, "1.5")
	m.Update(FieldSellQuantity, "2")
	m.Update(FieldSymbol, "ETHUSDT")

	cfg := m.Snapshot()
	assert.Equal(t, 1.5, cfg.BuyQuantity)
	assert.Equal(t, 2.0, cfg.SellQuantity)
	assert.Equal(t, "ETHUSDT", cfg.Symbol)
}

func TestUpdateUnparseableNumberBecomesZero(t *testing.T) {
	m := NewConfigModel()

	m.Update(FieldBuyQuantity, "1.5")
	m.Update(FieldBuyQuantity, "not-a-number")

	assert.Equal(t, 0.0, m.Snapshot().BuyQuantity)
}

func TestUpdateDoesNotClampRanges(t *testing.T) {
	m := NewConfigModel()

	// range hints are affordance metadata, not invariants
	m.Update(FieldMaxPriceDeviation, "0.9")

	assert.Equal(t, 0.9, m.Snapshot().MaxPriceDeviation)
}

func TestUpdateIgnoresUnknownField(t *testing.T) {
	m := NewConfigModel()
	before := m.Snapshot()

	m.Update("leverage", "10")

	assert.Equal(t, before, m.Snapshot())
}

func TestIsSubmittable(t *testing.T) {
	m := NewConfigModel()
	assert.False(t, m.IsSubmittable())

	m.Update(FieldApiKey, "k1")
	assert.False(t, m.IsSubmittable())

	m.Update(FieldSecretKey, "s1")
	assert.True(t, m.IsSubmittable())

	m.Update(FieldApiKey, "")
	assert.False(t, m.IsSubmittable())
}

func TestFieldSpecMetadata(t *testing.T) {
	spec := LookupField(FieldMaxPriceDeviation)
	assert.NotNil(t, spec)
	assert.True(t, spec.Numeric)
	assert.Equal(t, 0.01, spec.Min)
	assert.Equal(t, 0.5, spec.Max)

	assert.True(t, LookupField(FieldApiKey).Secret)
	assert.Nil(t, LookupField("nope"))
}
