package modules

import (
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

const (
	FieldApiKey            = "api_key"
	FieldSecretKey         = "secret_key"
	FieldSymbol            = "symbol"
	FieldBuyQuantity       = "buy_quantity"
	FieldSellQuantity      = "sell_quantity"
	FieldMaxPriceDeviation = "max_price_deviation"
)

// FieldSpec describes one editable field. Min/Max are input affordances
// only, never enforced on update.
type FieldSpec struct {
	Name    string
	Label   string
	Numeric bool
	Secret  bool
	Min     float64
	Max     float64
}

var Fields = []FieldSpec{
	{Name: FieldApiKey, Label: "API Key", Secret: true},
	{Name: FieldSecretKey, Label: "Secret Key", Secret: true},
	{Name: FieldSymbol, Label: "Symbol"},
	{Name: FieldBuyQuantity, Label: "Buy Quantity", Numeric: true, Min: 0},
	{Name: FieldSellQuantity, Label: "Sell Quantity", Numeric: true, Min: 0},
	{Name: FieldMaxPriceDeviation, Label: "Max Price Deviation", Numeric: true, Min: 0.01, Max: 0.5},
}

var numericFields = []string{FieldBuyQuantity, FieldSellQuantity, FieldMaxPriceDeviation}

// LookupField returns the spec for a field name, or nil for unknown names.
func LookupField(name string) *FieldSpec {
	for i := range Fields {
		if Fields[i].Name == name {
			return &Fields[i]
		}
	}
	return nil
}

// ConfigModel holds the editable bot configuration. It is not synchronized;
// the owning Panel serializes access.
type ConfigModel struct {
	cfg models.Configuration
}

func NewConfigModel() *ConfigModel {
	return &ConfigModel{
		cfg: models.Configuration{
			Symbol:            models.DefaultSymbol,
			MaxPriceDeviation: models.DefaultMaxPriceDeviation,
		},
	}
}

// Update replaces one field from raw operator input. Numeric fields are
// coerced to numbers (unparseable input becomes zero); no range clamping.
// Unknown field names are ignored.
func (m *ConfigModel) Update(field, raw string) {
	if slices.Contains(numericFields, field) {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			value = 0
		}
		switch field {
		case FieldBuyQuantity:
			m.cfg.BuyQuantity = value
		case FieldSellQuantity:
			m.cfg.SellQuantity = value
		case FieldMaxPriceDeviation:
			m.cfg.MaxPriceDeviation = value
		}
		return
	}

	switch field {
	case FieldApiKey:
		m.cfg.ApiKey = raw
	case FieldSecretKey:
		m.cfg.SecretKey = raw
	case FieldSymbol:
		m.cfg.Symbol = raw
	}
}

// IsSubmittable is the only gate before a start attempt.
func (m *ConfigModel) IsSubmittable() bool {
	return m.cfg.ApiKey != "" && m.cfg.SecretKey != ""
}

func (m *ConfigModel) Snapshot() models.Configuration {
	return m.cfg
}

// Replace swaps in a whole configuration, used for flag/yaml seeding.
func (m *ConfigModel) Replace(cfg models.Configuration) {
	m.cfg = cfg
}
