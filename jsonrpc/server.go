package jsonrpc

import (
	"context"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"ledgerscan/config"
	"ledgerscan/logx"
	"ledgerscan/scan"
	"ledgerscan/store"
)

// --- Params/Results ---

type scanTransfersParams struct {
	StartBlock uint64 `json:"start_block"`
	EndBlock   uint64 `json:"end_block"`
}

type transferInfo struct {
	Height    uint64 `json:"height"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

type scanTransfersResponse struct {
	Transfers []transferInfo `json:"transfers"`
	Count     int            `json:"count"`
}

type getBlockParams struct {
	Height uint64 `json:"height"`
}

type blockInfo struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	PrevHash  string `json:"prev_hash"`
	Timestamp string `json:"timestamp"`
	Proposer  string `json:"proposer"`
	TxCount   int    `json:"tx_count"`
}

type latestHeightResponse struct {
	Height uint64 `json:"height"`
}

type healthCheckResponse struct {
	Ok           bool   `json:"ok"`
	LatestHeight uint64 `json:"latest_height"`
}

// --- Server ---

type Server struct {
	addr       string
	scanner    *scan.TransferScanner
	chain      store.ChainStore
	scanCfg    *config.ScanConfig
	corsConfig CORSConfig
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

func NewServer(addr string, scanner *scan.TransferScanner, chain store.ChainStore, scanCfg *config.ScanConfig) *Server {
	if scanCfg == nil {
		scanCfg = config.DefaultScanConfig()
	}
	return &Server{
		addr:    addr,
		scanner: scanner,
		chain:   chain,
		scanCfg: scanCfg,
		corsConfig: CORSConfig{
			AllowedOrigins: []string{},
			AllowedMethods: []string{},
			AllowedHeaders: []string{},
			MaxAge:         0,
		},
	}
}

// SetCORSConfig allows configuring CORS settings
func (s *Server) SetCORSConfig(cfg CORSConfig) {
	s.corsConfig = cfg
}

// Start serves JSON-RPC over HTTP until the listener fails.
func (s *Server) Start() error {
	methods := s.buildMethodMap()
	jh := jhttp.NewBridge(methods, &jhttp.BridgeOptions{Server: &jrpc2.ServerOptions{}})

	mux := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.setCORSHeaders(w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		jh.ServeHTTP(w, r)
	}))

	logx.Info("JSONRPC", "Serving JSON-RPC on ", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *Server) setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	if len(s.corsConfig.AllowedOrigins) == 0 {
		return
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range s.corsConfig.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			break
		}
	}
	if len(s.corsConfig.AllowedMethods) > 0 {
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(s.corsConfig.AllowedMethods, ", "))
	}
	if len(s.corsConfig.AllowedHeaders) > 0 {
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(s.corsConfig.AllowedHeaders, ", "))
	}
	if s.corsConfig.MaxAge > 0 {
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(s.corsConfig.MaxAge))
	}
}

// Build jrpc2 method map
func (s *Server) buildMethodMap() handler.Map {
	return handler.Map{
		MethodLedgerScanTransfers: handler.New(func(ctx context.Context, p scanTransfersParams) (*scanTransfersResponse, error) {
			return s.rpcScanTransfers(p)
		}),
		MethodLedgerGetBlock: handler.New(func(ctx context.Context, p getBlockParams) (*blockInfo, error) {
			return s.rpcGetBlock(p)
		}),
		MethodLedgerLatestHeight: handler.New(func(ctx context.Context) (*latestHeightResponse, error) {
			return &latestHeightResponse{Height: s.chain.LatestHeight()}, nil
		}),
		MethodHealthCheck: handler.New(func(ctx context.Context) (*healthCheckResponse, error) {
			return &healthCheckResponse{Ok: true, LatestHeight: s.chain.LatestHeight()}, nil
		}),
	}
}

func (s *Server) rpcScanTransfers(p scanTransfersParams) (*scanTransfersResponse, error) {
	if p.EndBlock > p.StartBlock && p.EndBlock-p.StartBlock > s.scanCfg.MaxScanSpan {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams,
			"height span %d exceeds limit %d", p.EndBlock-p.StartBlock, s.scanCfg.MaxScanSpan)
	}

	transfers, err := s.scanner.ScanTransfers(p.StartBlock, p.EndBlock)
	if err != nil {
		logx.Error("JSONRPC", "ScanTransfers failed: ", err)
		return nil, jrpc2.Errorf(jrpc2.InternalError, "storage unavailable: %v", err)
	}

	out := make([]transferInfo, len(transfers))
	for i, t := range transfers {
		out[i] = transferInfo{
			Height:    t.Height,
			From:      t.From.String(),
			To:        t.To.String(),
			Value:     t.Value,
			Timestamp: t.Timestamp,
		}
	}
	return &scanTransfersResponse{Transfers: out, Count: len(out)}, nil
}

func (s *Server) rpcGetBlock(p getBlockParams) (*blockInfo, error) {
	blk, err := s.chain.Block(p.Height)
	if err != nil {
		logx.Error("JSONRPC", "GetBlock failed: ", err)
		return nil, jrpc2.Errorf(jrpc2.InternalError, "failed to read block: %v", err)
	}
	if blk == nil {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "no block at height %d", p.Height)
	}

	return &blockInfo{
		Height:    blk.Height,
		Hash:      hex.EncodeToString(blk.Hash[:]),
		PrevHash:  hex.EncodeToString(blk.PrevHash[:]),
		Timestamp: strconv.FormatUint(blk.Timestamp, 10),
		Proposer:  blk.Proposer,
		TxCount:   len(blk.TxHashes),
	}, nil
}
