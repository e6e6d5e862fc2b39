package domain

import (
	"strings"
	"time"
)

type Side string
type OrderType string
type OrderStatus string
type ExecType string

const (
	Buy  Side = "buy"
	Sell Side = "sell"

	Limit  OrderType = "limit"
	Market OrderType = "market"
	TPSL   OrderType = "tpsl"

	// ExecLimit and ExecMarket select how a TPSL order enters the market.
	ExecLimit  ExecType = "limit"
	ExecMarket ExecType = "market"

	Open     OrderStatus = "open"
	Filled   OrderStatus = "filled"
	Canceled OrderStatus = "canceled"
)

// Order is a spot order on a BASE/QUOTE pair. Fills are binary: Filled is
// either 0 or equal to Amount, there is no partial-fill state.
type Order struct {
	ID      string      `json:"id"`
	Symbol  string      `json:"symbol"`
	Side    Side        `json:"side"`
	Type    OrderType   `json:"type"`
	Price   float64     `json:"price"`
	Amount  float64     `json:"amount"`
	Filled  float64     `json:"filled"`
	Status  OrderStatus `json:"status"`
	Time    time.Time   `json:"time"`
	TPPrice float64     `json:"tp_price,omitempty"`
	SLPrice float64     `json:"sl_price,omitempty"`
}

// HasExit reports whether the order carries a take-profit or stop-loss
// threshold and therefore stays tracked after it fills.
func (o *Order) HasExit() bool {
	return o.TPPrice > 0 || o.SLPrice > 0
}

// Base returns the traded asset of the pair.
func (o *Order) Base() string {
	base, _ := SplitPair(o.Symbol)
	return base
}

// Quote returns the settlement asset of the pair.
func (o *Order) Quote() string {
	_, quote := SplitPair(o.Symbol)
	return quote
}

// SplitPair splits "BTC/USDT" into base and quote. A bare symbol settles
// against USDT.
func SplitPair(symbol string) (base, quote string) {
	if i := strings.IndexByte(symbol, '/'); i >= 0 {
		return symbol[:i], symbol[i+1:]
	}
	return symbol, "USDT"
}

// OrderSpec is the placement request handed to the engine. Price carries the
// limit price for limit orders and the live mark price captured by the
// caller for market orders. Zero TP/SL values mean "not set".
type OrderSpec struct {
	Symbol  string
	Side    Side
	Type    OrderType
	Exec    ExecType // execution style for TPSL orders
	Price   float64
	Amount  float64
	TPPrice float64
	SLPrice float64
}
