package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

type OrderType string

const (
	Limit  OrderType = "limit"
	Market OrderType = "market"
	TPSL   OrderType = "tpsl"
)

// Money fields travel as decimals so JSON round trips stay exact; the
// engine converts them to float64 at the boundary.

type PlaceOrderRequest struct {
	Symbol string    `json:"symbol" binding:"required"`
	Side   Side      `json:"side" binding:"required"`
	Type   OrderType `json:"type" binding:"required"`
	// Exec selects limit or market execution for tpsl orders.
	Exec    string          `json:"exec,omitempty"`
	Price   decimal.Decimal `json:"price,omitempty"` // omitted for market: live mark price is used
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	TPPrice decimal.Decimal `json:"tp_price,omitempty"`
	SLPrice decimal.Decimal `json:"sl_price,omitempty"`
}

type PlaceOrderResponse struct {
	Placed  bool   `json:"placed"`
	Message string `json:"message,omitempty"`
}

type CancelOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type CancelOrderResponse struct {
	OrderID string `json:"order_id"`
}

type TransferRequest struct {
	Symbol string          `json:"symbol" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type TransferResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type Asset struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	Available float64 `json:"available"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
}

type Order struct {
	ID      string    `json:"id"`
	Symbol  string    `json:"symbol"`
	Side    Side      `json:"side"`
	Type    OrderType `json:"type"`
	Price   float64   `json:"price"`
	Amount  float64   `json:"amount"`
	Filled  float64   `json:"filled"`
	Status  string    `json:"status"`
	Time    time.Time `json:"time"`
	TPPrice float64   `json:"tp_price,omitempty"`
	SLPrice float64   `json:"sl_price,omitempty"`
}

type Trade struct {
	ID     string    `json:"id"`
	Pair   string    `json:"pair"`
	Type   Side      `json:"type"`
	Price  float64   `json:"price"`
	Amount float64   `json:"amount"`
	Time   time.Time `json:"time"`
}

type SessionResponse struct {
	Active bool   `json:"active"`
	Mode   string `json:"mode,omitempty"`
	Tier   string `json:"tier"`
}
