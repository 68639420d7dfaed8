package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/app"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/orm"
	"github.com/tandemswap/tandem/x/funds"
	"github.com/tandemswap/tandem/x/swap"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type rpcRequest struct {
	Version string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	Version string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *rpcError   `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type method func(params json.RawMessage) (interface{}, error)

// Server terminates JSON-RPC requests and feeds them into the
// application. Transactions are applied one per block; the mutex keeps the
// block lifecycle serialized.
type Server struct {
	mu      sync.Mutex
	app     *app.TandemApp
	conf    Config
	logger  *zap.Logger
	methods map[string]method
}

// NewServer wires the RPC methods around an initialized application.
func NewServer(application *app.TandemApp, conf Config, logger *zap.Logger) *Server {
	srv := &Server{
		app:    application,
		conf:   conf,
		logger: logger,
	}
	srv.methods = map[string]method{
		"initiate_swap": srv.initiateSwap,
		"accept_swap":   srv.acceptSwap,
		"cancel_swap":   srv.cancelSwap,
		"send":          srv.send,
		"get_swap":      srv.getSwap,
		"get_balance":   srv.getBalance,
	}
	return srv
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	return s.engine().Run(s.conf.ListenAddr)
}

func (s *Server) engine() *gin.Engine {
	if !s.conf.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/", s.handleJSONRPC)
	return r
}

func (s *Server) handleJSONRPC(ctx *gin.Context) {
	var req rpcRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, rpcResponse{
			Version: "2.0",
			Error:   &rpcError{Code: codeParseError, Message: "parse error"},
		})
		return
	}
	if req.Version != "2.0" {
		ctx.JSON(http.StatusOK, rpcResponse{
			Version: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeInvalidRequest, Message: "jsonrpc must be 2.0"},
		})
		return
	}
	fn, ok := s.methods[req.Method]
	if !ok {
		ctx.JSON(http.StatusOK, rpcResponse{
			Version: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeMethodNotFound, Message: "method not found"},
		})
		return
	}

	result, err := fn(req.Params)
	if err != nil {
		code, msg := errors.Info(err, s.conf.Debug)
		s.logger.Info("request failed",
			zap.String("method", req.Method),
			zap.Uint32("code", code),
			zap.Error(err),
		)
		ctx.JSON(http.StatusOK, rpcResponse{
			Version: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: int(code), Message: msg},
		})
		return
	}
	ctx.JSON(http.StatusOK, rpcResponse{
		Version: "2.0",
		ID:      req.ID,
		Result:  result,
	})
}

// deliver applies a single transaction as its own block.
func (s *Server) deliver(sender tandem.Address, msg tandem.Msg) (*tandem.DeliverResult, error) {
	raw, err := app.NewTx(sender, msg).Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.app.BeginBlock(s.app.Height() + 1); err != nil {
		return nil, err
	}
	res, err := s.app.DeliverTx(raw)
	if err != nil {
		return nil, err
	}
	if _, err := s.app.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Server) initiateSwap(params json.RawMessage) (interface{}, error) {
	var req struct {
		Sender             tandem.Address `json:"sender"`
		Counterparty       tandem.Address `json:"counterparty"`
		Amount             int64          `json:"amount"`
		CounterpartyAmount int64          `json:"counterparty_amount"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}
	res, err := s.deliver(req.Sender, &swap.InitiateSwapMsg{
		Initiator:          req.Sender,
		Counterparty:       req.Counterparty,
		Amount:             req.Amount,
		CounterpartyAmount: req.CounterpartyAmount,
	})
	if err != nil {
		return nil, err
	}
	return map[string]int64{"swap_id": orm.DecodeSequence(res.Data)}, nil
}

func (s *Server) acceptSwap(params json.RawMessage) (interface{}, error) {
	var req struct {
		Sender tandem.Address `json:"sender"`
		SwapID int64          `json:"swap_id"`
		Amount int64          `json:"amount"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}
	res, err := s.deliver(req.Sender, &swap.AcceptSwapMsg{
		SwapID: orm.EncodeSequence(req.SwapID),
		Amount: req.Amount,
	})
	if err != nil {
		return nil, err
	}
	return map[string]int64{"swap_id": orm.DecodeSequence(res.Data)}, nil
}

func (s *Server) cancelSwap(params json.RawMessage) (interface{}, error) {
	var req struct {
		Sender tandem.Address `json:"sender"`
		SwapID int64          `json:"swap_id"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}
	res, err := s.deliver(req.Sender, &swap.CancelSwapMsg{
		SwapID: orm.EncodeSequence(req.SwapID),
	})
	if err != nil {
		return nil, err
	}
	return map[string]int64{"swap_id": orm.DecodeSequence(res.Data)}, nil
}

func (s *Server) send(params json.RawMessage) (interface{}, error) {
	var req struct {
		Sender      tandem.Address `json:"sender"`
		Destination tandem.Address `json:"destination"`
		Amount      int64          `json:"amount"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}
	if _, err := s.deliver(req.Sender, &funds.SendMsg{
		Src:    req.Sender,
		Dest:   req.Destination,
		Amount: req.Amount,
	}); err != nil {
		return nil, err
	}
	return map[string]bool{"ok": true}, nil
}

func (s *Server) getSwap(params json.RawMessage) (interface{}, error) {
	var req struct {
		SwapID int64 `json:"swap_id"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	models, err := s.app.Query("/swaps", orm.EncodeSequence(req.SwapID))
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "swap %d", req.SwapID)
	}
	var record swap.Swap
	if err := record.Unmarshal(models[0].Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal swap")
	}
	return map[string]interface{}{
		"swap_id":            req.SwapID,
		"initiator":          record.Initiator,
		"counterparty":       record.Counterparty,
		"initiator_asset":    record.InitiatorAsset,
		"counterparty_asset": record.CounterpartyAsset,
	}, nil
}

func (s *Server) getBalance(params json.RawMessage) (interface{}, error) {
	var req struct {
		Address tandem.Address `json:"address"`
	}
	if err := parseParams(params, &req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	models, err := s.app.Query("/wallets", req.Address)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var w funds.Wallet
	if len(models) != 0 {
		if err := w.Unmarshal(models[0].Value); err != nil {
			return nil, errors.Wrap(err, "unmarshal wallet")
		}
	}
	return map[string]interface{}{
		"address": req.Address,
		"balance": w.Balance,
	}, nil
}

func parseParams(params json.RawMessage, dest interface{}) error {
	if len(params) == 0 {
		return errors.Wrap(errors.ErrInput, "missing params")
	}
	if err := json.Unmarshal(params, dest); err != nil {
		return errors.Wrapf(errors.ErrInput, "invalid params: %s", err)
	}
	return nil
}
