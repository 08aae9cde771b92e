package models

const (
	DefaultSymbol            = "BTCUSDT"
	DefaultMaxPriceDeviation = 0.05
)

// Configuration is the full start-bot request body. JSON names follow the
// bot API, yaml names follow the defaults file.
type Configuration struct {
	ApiKey            string  `json:"api_key" yaml:"apiKey"`
	SecretKey         string  `json:"secret_key" yaml:"secretKey"`
	Symbol            string  `json:"symbol" yaml:"symbol"`
	BuyQuantity       float64 `json:"buy_quantity" yaml:"buyQuantity"`
	SellQuantity      float64 `json:"sell_quantity" yaml:"sellQuantity"`
	MaxPriceDeviation float64 `json:"max_price_deviation" yaml:"maxPriceDeviation"`
}
