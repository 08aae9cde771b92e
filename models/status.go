package models

import "github.com/shopspring/decimal"

// OrderRef is the bot's view of one of its resting orders.
type OrderRef struct {
	Price   decimal.Decimal `json:"price"`
	OrderID string          `json:"orderId"`
}

// StatusSnapshot mirrors the bot-status response. Optional fields are
// pointers: nil means the bot did not report the field, a non-nil zero is a
// real zero and must be displayed as such. Prices arrive as JSON strings or
// null.
type StatusSnapshot struct {
	Running          bool             `json:"running"`
	Message          string           `json:"message,omitempty"`
	Symbol           string           `json:"symbol,omitempty"`
	BestBid          *decimal.Decimal `json:"best_bid,omitempty"`
	BestAsk          *decimal.Decimal `json:"best_ask,omitempty"`
	Spread           *decimal.Decimal `json:"spread,omitempty"`
	InitialPrice     *decimal.Decimal `json:"initial_price,omitempty"`
	CurrentBuyOrder  *OrderRef        `json:"current_buy_order,omitempty"`
	CurrentSellOrder *OrderRef        `json:"current_sell_order,omitempty"`
}
