package core

import (
	"testing"

	"github.com/swiftex-io/quilex/internal/domain"
)

func newTestLedger() *Ledger {
	return NewLedger([]domain.SeedAsset{
		{Symbol: "USDT", Name: "Tether", Price: 1, Balance: 1000},
		{Symbol: "BTC", Name: "Bitcoin", Price: 60000, Balance: 2},
	})
}

func TestLedgerDeposit(t *testing.T) {
	l := newTestLedger()
	if err := l.Deposit("USDT", 250); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	a := l.Get("USDT")
	if a.Balance != 1250 || a.Available != 1250 {
		t.Errorf("USDT = %v/%v, want 1250/1250", a.Balance, a.Available)
	}
	if err := l.Deposit("DOGE", 1); err != ErrUnknownAsset {
		t.Errorf("err = %v, want ErrUnknownAsset", err)
	}
}

func TestLedgerWithdraw(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		ok            bool
		wantBalance   float64
		wantAvailable float64
	}{
		{"within available", 400, true, 600, 600},
		{"exactly available", 1000, true, 0, 0},
		{"over available", 1001, false, 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			if got := l.Withdraw("USDT", tt.amount); got != tt.ok {
				t.Fatalf("Withdraw = %v, want %v", got, tt.ok)
			}
			a := l.Get("USDT")
			if a.Balance != tt.wantBalance || a.Available != tt.wantAvailable {
				t.Errorf("USDT = %v/%v, want %v/%v", a.Balance, a.Available, tt.wantBalance, tt.wantAvailable)
			}
		})
	}
}

func TestLedgerRejectsNonPositiveTransfers(t *testing.T) {
	l := newTestLedger()

	if err := l.Deposit("USDT", -100000); err != ErrInvalidAmount {
		t.Errorf("deposit -100000: err = %v, want ErrInvalidAmount", err)
	}
	if err := l.Deposit("USDT", 0); err != ErrInvalidAmount {
		t.Errorf("deposit 0: err = %v, want ErrInvalidAmount", err)
	}
	if l.Withdraw("USDT", -100) {
		t.Error("withdraw -100 should fail, not mint funds")
	}
	if l.Withdraw("USDT", 0) {
		t.Error("withdraw 0 should fail")
	}

	a := l.Get("USDT")
	if a.Balance != 1000 || a.Available != 1000 {
		t.Errorf("USDT = %v/%v, want untouched 1000/1000", a.Balance, a.Available)
	}
}

func TestLedgerReserveRelease(t *testing.T) {
	l := newTestLedger()

	if !l.Reserve("BTC", 0.5) {
		t.Fatal("reserve should succeed")
	}
	a := l.Get("BTC")
	if a.Balance != 2 || a.Available != 1.5 {
		t.Errorf("BTC = %v/%v, want 2/1.5", a.Balance, a.Available)
	}
	if a.Reserved() != 0.5 {
		t.Errorf("reserved = %v, want 0.5", a.Reserved())
	}

	if l.Reserve("BTC", 1.6) {
		t.Error("reserve beyond available should fail")
	}

	l.Release("BTC", 0.5)
	a = l.Get("BTC")
	if a.Balance != 2 || a.Available != 2 {
		t.Errorf("BTC = %v/%v after release, want 2/2", a.Balance, a.Available)
	}
}

func TestLedgerConsumeReserved(t *testing.T) {
	l := newTestLedger()
	l.Reserve("USDT", 300)
	l.ConsumeReserved("USDT", 300)

	a := l.Get("USDT")
	if a.Balance != 700 || a.Available != 700 {
		t.Errorf("USDT = %v/%v, want 700/700", a.Balance, a.Available)
	}
}

func TestLedgerMarkPrice(t *testing.T) {
	l := newTestLedger()
	l.MarkPrice("BTC", 63000)

	a := l.Get("BTC")
	if a.Price != 63000 {
		t.Errorf("price = %v, want 63000", a.Price)
	}
	if a.Change24h != 5 {
		t.Errorf("change = %v, want 5", a.Change24h)
	}

	// unknown symbols are ignored
	l.MarkPrice("DOGE", 0.1)
}

func TestLedgerResetRestoresSeed(t *testing.T) {
	l := newTestLedger()
	l.Withdraw("USDT", 999)
	l.Reset([]domain.SeedAsset{{Symbol: "USDT", Name: "Tether", Price: 1, Balance: 50}})

	a := l.Get("USDT")
	if a.Balance != 50 || a.Available != 50 {
		t.Errorf("USDT = %v/%v after reset, want 50/50", a.Balance, a.Available)
	}
	if l.Get("BTC") != nil {
		t.Error("BTC should be gone after reset")
	}
}

func TestLedgerAssetsOrder(t *testing.T) {
	l := newTestLedger()
	assets := l.Assets()
	if len(assets) != 2 || assets[0].Symbol != "USDT" || assets[1].Symbol != "BTC" {
		t.Errorf("assets out of seed order: %+v", assets)
	}
	// copies, not aliases
	assets[0].Balance = 0
	if l.Get("USDT").Balance != 1000 {
		t.Error("Assets must return copies")
	}
}
