package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/swiftex-io/quilex/internal/api/dto"
	"github.com/swiftex-io/quilex/internal/core"
	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/middleware"
	"github.com/swiftex-io/quilex/internal/notify"
	"github.com/swiftex-io/quilex/internal/port"
	"github.com/swiftex-io/quilex/internal/session"
	"github.com/swiftex-io/quilex/internal/stream"
)

// HTTPServer exposes the engine and session surface over gin.
type HTTPServer struct {
	Eng      *core.Engine
	Sessions *session.Manager
	Center   *notify.Center
	Hub      *stream.Hub
	Archive  port.TradeArchive // optional
}

func NewHTTPServer(eng *core.Engine, sessions *session.Manager, center *notify.Center, hub *stream.Hub, archive port.TradeArchive) *HTTPServer {
	return &HTTPServer{
		Eng:      eng,
		Sessions: sessions,
		Center:   center,
		Hub:      hub,
		Archive:  archive,
	}
}

func (s *HTTPServer) Router(rl *middleware.RateLimiter) *gin.Engine {
	r := gin.Default()

	// only state-changing routes are throttled; reads stay unlimited
	mut := r.Group("")
	if rl != nil {
		mut.Use(rl.Middleware())
	}

	mut.POST("/session/guest", s.enterGuest)
	mut.POST("/session/signout", s.signOut)
	r.GET("/session", s.getSession)

	r.GET("/assets", s.getAssets)
	mut.POST("/wallet/deposit", s.deposit)
	mut.POST("/wallet/withdraw", s.withdraw)

	mut.POST("/orders", s.placeOrder)
	mut.POST("/orders/cancel", s.cancelOrder)
	r.GET("/orders", s.getOpenOrders)
	r.GET("/positions", s.getPositions)
	r.GET("/trades", s.getTrades)
	r.GET("/trades/archive", s.getArchivedTrades)
	r.GET("/notifications", s.getNotifications)

	r.GET("/ws", s.serveStream)

	return r
}

func (s *HTTPServer) Run(addr string, rl *middleware.RateLimiter) error {
	return s.Router(rl).Run(addr)
}

func (s *HTTPServer) enterGuest(c *gin.Context) {
	sess, err := s.Sessions.EnterGuestMode(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{
		Active: true,
		Mode:   string(sess.Mode),
		Tier:   string(s.Sessions.Tier()),
	})
}

func (s *HTTPServer) signOut(c *gin.Context) {
	if err := s.Sessions.SignOut(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *HTTPServer) getSession(c *gin.Context) {
	resp := dto.SessionResponse{Tier: string(s.Sessions.Tier())}
	if sess := s.Sessions.Current(); sess != nil {
		resp.Active = true
		resp.Mode = string(sess.Mode)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) getAssets(c *gin.Context) {
	assets := s.Eng.Assets()
	out := make([]dto.Asset, len(assets))
	for i, a := range assets {
		out[i] = dto.Asset{
			Symbol:    a.Symbol,
			Name:      a.Name,
			Balance:   a.Balance,
			Available: a.Available,
			Price:     a.Price,
			Change24h: a.Change24h,
		}
	}
	c.JSON(http.StatusOK, gin.H{"assets": out})
}

func (s *HTTPServer) deposit(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be > 0"})
		return
	}
	err := s.Sessions.Deposit(c.Request.Context(), req.Symbol, req.Amount.InexactFloat64())
	switch {
	case errors.Is(err, session.ErrNoSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrUnknownAsset):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, dto.TransferResponse{Ok: true})
	}
}

func (s *HTTPServer) withdraw(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be > 0"})
		return
	}
	ok, err := s.Sessions.Withdraw(c.Request.Context(), req.Symbol, req.Amount.InexactFloat64())
	if errors.Is(err, session.ErrNoSession) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	resp := dto.TransferResponse{Ok: ok}
	if !ok {
		resp.Message = "insufficient available balance"
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) placeOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ValidateOrder(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	price := req.Price.InexactFloat64()
	if price == 0 && marketExecution(req) {
		// market orders execute at the live mark price captured here
		base, _ := domain.SplitPair(req.Symbol)
		if a, ok := s.Eng.Asset(base); ok {
			price = a.Price
		}
	}

	spec := domain.OrderSpec{
		Symbol:  req.Symbol,
		Side:    domain.Side(req.Side),
		Type:    domain.OrderType(req.Type),
		Exec:    domain.ExecType(req.Exec),
		Price:   price,
		Amount:  req.Amount.InexactFloat64(),
		TPPrice: req.TPPrice.InexactFloat64(),
		SLPrice: req.SLPrice.InexactFloat64(),
	}

	placed := s.Eng.PlaceOrder(c.Request.Context(), spec)
	resp := dto.PlaceOrderResponse{Placed: placed}
	if !placed {
		resp.Message = "insufficient available balance"
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) cancelOrder(c *gin.Context) {
	var req dto.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.Eng.CancelOrder(c.Request.Context(), req.OrderID)
	c.JSON(http.StatusOK, dto.CancelOrderResponse{OrderID: req.OrderID})
}

func (s *HTTPServer) getOpenOrders(c *gin.Context) {
	f := core.Filter{
		Symbol: c.Query("symbol"),
		Side:   domain.Side(c.Query("side")),
		Type:   domain.OrderType(c.Query("type")),
	}
	c.JSON(http.StatusOK, gin.H{"orders": convertOrders(s.Eng.OpenOrders(f))})
}

func (s *HTTPServer) getPositions(c *gin.Context) {
	f := core.Filter{Symbol: c.Query("symbol")}
	c.JSON(http.StatusOK, gin.H{"positions": convertOrders(s.Eng.Positions(f))})
}

func (s *HTTPServer) getTrades(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	trades := s.Eng.History(limit)
	out := make([]dto.Trade, len(trades))
	for i, t := range trades {
		out[i] = convertTrade(t)
	}
	c.JSON(http.StatusOK, gin.H{"trades": out})
}

func (s *HTTPServer) getArchivedTrades(c *gin.Context) {
	if s.Archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trade archive not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	trades, err := s.Archive.RecentTrades(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.Trade, len(trades))
	for i, t := range trades {
		out[i] = convertTrade(*t)
	}
	c.JSON(http.StatusOK, gin.H{"trades": out})
}

func (s *HTTPServer) getNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": s.Center.Active()})
}

func convertOrders(orders []domain.Order) []dto.Order {
	out := make([]dto.Order, len(orders))
	for i, o := range orders {
		out[i] = dto.Order{
			ID:      o.ID,
			Symbol:  o.Symbol,
			Side:    dto.Side(o.Side),
			Type:    dto.OrderType(o.Type),
			Price:   o.Price,
			Amount:  o.Amount,
			Filled:  o.Filled,
			Status:  string(o.Status),
			Time:    o.Time,
			TPPrice: o.TPPrice,
			SLPrice: o.SLPrice,
		}
	}
	return out
}

func convertTrade(t domain.Trade) dto.Trade {
	return dto.Trade{
		ID:     t.ID,
		Pair:   t.Pair,
		Type:   dto.Side(t.Type),
		Price:  t.Price,
		Amount: t.Amount,
		Time:   t.Time,
	}
}

func marketExecution(req dto.PlaceOrderRequest) bool {
	return req.Type == dto.Market || (req.Type == dto.TPSL && req.Exec == "market")
}

// ValidateOrder rejects malformed placement requests before they reach the
// engine.
func ValidateOrder(req *dto.PlaceOrderRequest) error {
	switch req.Side {
	case dto.Buy, dto.Sell:
	default:
		return fmt.Errorf("invalid side: %s", req.Side)
	}
	switch req.Type {
	case dto.Limit, dto.Market, dto.TPSL:
	default:
		return fmt.Errorf("invalid order type: %s", req.Type)
	}
	if !req.Amount.IsPositive() {
		return fmt.Errorf("amount must be > 0")
	}
	if req.Type == dto.Limit && !req.Price.IsPositive() {
		return fmt.Errorf("price must be > 0 for limit orders")
	}
	if req.Type == dto.TPSL {
		if !req.SLPrice.IsPositive() {
			return fmt.Errorf("trigger price required for tpsl orders")
		}
		if req.Exec != "limit" && req.Exec != "market" {
			return fmt.Errorf("invalid tpsl execution type: %s", req.Exec)
		}
		if req.Exec == "limit" && !req.Price.IsPositive() {
			return fmt.Errorf("price must be > 0 for limit execution")
		}
	}
	return nil
}
