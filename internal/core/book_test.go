package core

import (
	"testing"

	"github.com/swiftex-io/quilex/internal/domain"
)

func TestBookInsertionOrderAndRemoval(t *testing.T) {
	b := newBook()
	b.add(&domain.Order{ID: "a", Symbol: "BTC/USDT", Side: domain.Buy, Type: domain.Limit})
	b.add(&domain.Order{ID: "b", Symbol: "ETH/USDT", Side: domain.Sell, Type: domain.Limit})
	b.add(&domain.Order{ID: "c", Symbol: "BTC/USDT", Side: domain.Sell, Type: domain.Market})

	if b.len() != 3 {
		t.Fatalf("len = %d, want 3", b.len())
	}
	ids := func(orders []domain.Order) []string {
		out := make([]string, len(orders))
		for i, o := range orders {
			out[i] = o.ID
		}
		return out
	}
	got := ids(b.list(Filter{}))
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	b.remove("b")
	if b.len() != 2 {
		t.Errorf("len = %d after remove, want 2", b.len())
	}
	if _, ok := b.get("b"); ok {
		t.Error("removed order still present")
	}
	b.remove("b") // second removal is a no-op
	if b.len() != 2 {
		t.Error("double remove changed the book")
	}
}

func TestBookListFilters(t *testing.T) {
	b := newBook()
	b.add(&domain.Order{ID: "a", Symbol: "BTC/USDT", Side: domain.Buy, Type: domain.Limit})
	b.add(&domain.Order{ID: "b", Symbol: "BTC/USDT", Side: domain.Sell, Type: domain.Limit})
	b.add(&domain.Order{ID: "c", Symbol: "ETH/USDT", Side: domain.Buy, Type: domain.TPSL})

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 3},
		{"by symbol", Filter{Symbol: "BTC/USDT"}, 2},
		{"by side", Filter{Side: domain.Buy}, 2},
		{"by type", Filter{Type: domain.TPSL}, 1},
		{"combined", Filter{Symbol: "BTC/USDT", Side: domain.Sell}, 1},
		{"no match", Filter{Symbol: "SOL/USDT"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(b.list(tt.filter)); got != tt.want {
				t.Errorf("list(%+v) = %d, want %d", tt.filter, got, tt.want)
			}
		})
	}
}
