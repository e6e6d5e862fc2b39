package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/swiftex-io/quilex/internal/adapter/in_memory"
	"github.com/swiftex-io/quilex/internal/api/dto"
	"github.com/swiftex-io/quilex/internal/core"
	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/notify"
	"github.com/swiftex-io/quilex/internal/session"
	"github.com/swiftex-io/quilex/internal/stream"
)

func newTestServer(t *testing.T) (*HTTPServer, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	center := notify.NewCenter(time.Minute)
	engine := core.NewEngine([]domain.SeedAsset{
		{Symbol: "USDT", Name: "Tether", Price: 1, Balance: 10000},
		{Symbol: "BTC", Name: "Bitcoin", Price: 60000},
	}, center, nil)
	sessions := session.NewManager(in_memory.NewSessionStore(), engine, nil)
	srv := NewHTTPServer(engine, sessions, center, stream.NewHub(), in_memory.NewArchive())
	return srv, srv.Router(nil)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderEndpoint(t *testing.T) {
	srv, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/orders", dto.PlaceOrderRequest{
		Symbol: "BTC/USDT",
		Side:   dto.Buy,
		Type:   dto.Limit,
		Price:  decimal.NewFromInt(59000),
		Amount: decimal.NewFromFloat(0.1),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp dto.PlaceOrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Placed {
		t.Fatalf("order rejected: %s", resp.Message)
	}
	if got := len(srv.Eng.OpenOrders(core.Filter{})); got != 1 {
		t.Errorf("open orders = %d, want 1", got)
	}
}

func TestPlaceOrderRejectsInsufficientFunds(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/orders", dto.PlaceOrderRequest{
		Symbol: "BTC/USDT",
		Side:   dto.Buy,
		Type:   dto.Limit,
		Price:  decimal.NewFromInt(60000),
		Amount: decimal.NewFromInt(5),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp dto.PlaceOrderResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Placed {
		t.Error("placement should be rejected")
	}
}

func TestMarketOrderUsesLiveMarkPrice(t *testing.T) {
	srv, r := newTestServer(t)

	// price omitted: the handler captures the live mark price
	w := doJSON(t, r, http.MethodPost, "/orders", dto.PlaceOrderRequest{
		Symbol: "BTC/USDT",
		Side:   dto.Buy,
		Type:   dto.Market,
		Amount: decimal.NewFromFloat(0.1),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	hist := srv.Eng.History(1)
	if len(hist) != 1 || hist[0].Price != 60000 {
		t.Errorf("trade = %+v, want fill at mark price 60000", hist)
	}
}

func TestDepositWithoutSessionIsUnauthorized(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/wallet/deposit", dto.TransferRequest{
		Symbol: "USDT",
		Amount: decimal.NewFromInt(100),
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	_, r := newTestServer(t)

	// no session needed: the amount check runs before the session gate
	w := doJSON(t, r, http.MethodPost, "/wallet/deposit", dto.TransferRequest{
		Symbol: "USDT",
		Amount: decimal.NewFromInt(-100),
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("deposit status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/wallet/withdraw", dto.TransferRequest{
		Symbol: "USDT",
		Amount: decimal.NewFromInt(-100),
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("withdraw status = %d, want 400", w.Code)
	}
}

func TestGuestSessionFlow(t *testing.T) {
	_, r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/session/guest", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("guest status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/wallet/deposit", dto.TransferRequest{
		Symbol: "USDT",
		Amount: decimal.NewFromInt(100),
	})
	if w.Code != http.StatusOK {
		t.Errorf("deposit status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/session", nil)
	var sess dto.SessionResponse
	json.Unmarshal(w.Body.Bytes(), &sess)
	if !sess.Active || sess.Mode != "guest" || sess.Tier != "Bronze" {
		t.Errorf("session = %+v", sess)
	}
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.PlaceOrderRequest
		wantErr bool
	}{
		{
			name: "valid limit",
			req:  dto.PlaceOrderRequest{Symbol: "BTC/USDT", Side: dto.Buy, Type: dto.Limit, Price: decimal.NewFromInt(1), Amount: decimal.NewFromInt(1)},
		},
		{
			name: "valid market without price",
			req:  dto.PlaceOrderRequest{Symbol: "BTC/USDT", Side: dto.Sell, Type: dto.Market, Amount: decimal.NewFromInt(1)},
		},
		{
			name: "valid tpsl market",
			req:  dto.PlaceOrderRequest{Symbol: "BTC/USDT", Side: dto.Buy, Type: dto.TPSL, Exec: "market", Amount: decimal.NewFromInt(1), SLPrice: decimal.NewFromInt(55000)},
		},
		{
			name:    "bad side",
			req:     dto.PlaceOrderRequest{Symbol: "BTC/USDT", Side: "hold", Type: dto.Limit, Price: decimal.NewFromInt(1), Amount: decimal.NewFromInt(1)},
			wantErr: true,
		},
		{
			name:    "bad type",
			req:     dto.PlaceOrderRequest{Symbol: "BTC/USDT", Side: dto.Buy, Type: "stop", Amount: decimal.NewFromInt(1)},
			wantErr: true,
		},
		{
			name:    "zero amount",
			req:     dto.PlaceOrderRequest{Symbol: "BTC/USDT", Side: dto.Buy, Type: dto.Limit, Price: decimal.NewFromInt(1)},
			wantErr: true,
		},
		{
			name:    "limit without price",
			req:     dto.PlaceOrderRequest{Symbol: "BTC/USDT", Side: dto.Buy, Type: dto.Limit, Amount: decimal.NewFromInt(1)},
			wantErr: true,
		},
		{
			name:    "tpsl without trigger",
			req:     dto.PlaceOrderRequest{Symbol: "BTC/USDT", Side: dto.Buy, Type: dto.TPSL, Exec: "market", Amount: decimal.NewFromInt(1)},
			wantErr: true,
		},
		{
			name:    "tpsl bad exec",
			req:     dto.PlaceOrderRequest{Symbol: "BTC/USDT", Side: dto.Buy, Type: dto.TPSL, Exec: "stop", Amount: decimal.NewFromInt(1), SLPrice: decimal.NewFromInt(1)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrder(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
