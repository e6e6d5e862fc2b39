package domain

import "time"

// Trade is an executed fill: the initial execution of an order or the
// closing leg booked by a TP/SL trigger. History records are never mutated.
type Trade struct {
	ID     string    `json:"id"`
	Pair   string    `json:"pair"`
	Type   Side      `json:"type"`
	Price  float64   `json:"price"`
	Amount float64   `json:"amount"`
	Time   time.Time `json:"time"`
}
