package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"seolens-mcp/internal/config"
	"seolens-mcp/internal/logging"
	"seolens-mcp/internal/mcpserver"
	"seolens-mcp/internal/store"
	"seolens-mcp/internal/version"
)

const serverName = "seolens-mcp"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		// fallback logger
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("failed to init logger", zap.Error(err))
	}
	defer logger.Sync()

	var st *store.Store
	if cfg.StorageEnabled() {
		st, err = store.Open(ctx, cfg)
		if err != nil {
			logger.Fatal("failed to open audit store", zap.Error(err), logging.FieldDSN("dsn", cfg.DatabaseDSN))
		}
		if err := st.Init(ctx); err != nil {
			logger.Fatal("failed to init audit store", zap.Error(err))
		}
		logger.Info("audit persistence enabled", logging.FieldDSN("dsn", cfg.DatabaseDSN))
	} else {
		logger.Info("audit persistence disabled; reports are returned but not stored")
	}

	srv, err := mcpserver.New(cfg, logger, st)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}
	defer srv.Close()

	switch cfg.Transport {
	case config.TransportStdio:
		runStdio(ctx, srv, logger)
	case config.TransportSSE:
		runSSE(ctx, srv, cfg, logger)
	case config.TransportStreamable:
		runStreamable(ctx, srv, cfg, logger)
	default:
		logger.Fatal("unknown transport", zap.String("transport", string(cfg.Transport)))
	}
}

func runStdio(ctx context.Context, srv *mcpserver.Server, logger *zap.Logger) {
	transport := &mcp.StdioTransport{}
	logger.Info("starting seolens-mcp server (stdio)", zap.String("name", serverName), zap.String("version", version.Version))
	if err := srv.Run(ctx, transport); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func runSSE(ctx context.Context, srv *mcpserver.Server, cfg config.Config, logger *zap.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.HTTPAddr, cfg.HTTPPort)
	endpoint := cfg.HTTPPath

	logger.Info("starting seolens-mcp server (SSE)",
		zap.String("name", serverName),
		zap.String("version", version.Version),
		zap.String("addr", addr),
		zap.String("endpoint", endpoint),
	)

	sessions := newSessionRegistry()
	sessionPrefix := endpoint + "/session/"

	mux := http.NewServeMux()

	// SSE endpoint - GET opens the stream, session POSTs go to a per-session
	// path. Sessions are tracked in a registry and dropped when the stream
	// ends, so long-running deployments do not accumulate dead handlers.
	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sessionID := generateSessionID()
		transport := &mcp.SSEServerTransport{
			Endpoint: sessionPrefix + sessionID,
			Response: w,
		}
		sessions.add(sessionID, transport)
		defer sessions.remove(sessionID)

		logger.Info("new SSE session", zap.String("session_id", sessionID))

		if err := srv.Run(r.Context(), transport); err != nil {
			logger.Error("SSE session error", zap.Error(err), zap.String("session_id", sessionID))
		}
	})

	mux.HandleFunc(sessionPrefix, func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimPrefix(r.URL.Path, sessionPrefix)
		transport, ok := sessions.get(sessionID)
		if !ok {
			http.Error(w, "Unknown session", http.StatusNotFound)
			return
		}
		transport.ServeHTTP(w, r)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")
		server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("HTTP server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func runStreamable(ctx context.Context, srv *mcpserver.Server, cfg config.Config, logger *zap.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.HTTPAddr, cfg.HTTPPort)
	endpoint := cfg.HTTPPath

	logger.Info("starting seolens-mcp server (Streamable HTTP)",
		zap.String("name", serverName),
		zap.String("version", version.Version),
		zap.String("addr", addr),
		zap.String("endpoint", endpoint),
	)

	mux := http.NewServeMux()

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		sessionID := generateSessionID()

		transport := &mcp.StreamableServerTransport{
			SessionID: sessionID,
		}

		go func() {
			if err := srv.Run(r.Context(), transport); err != nil {
				logger.Error("Streamable session error", zap.Error(err), zap.String("session_id", sessionID))
			}
		}()

		transport.ServeHTTP(w, r)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")
		server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("HTTP server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func generateSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// sessionRegistry tracks live SSE sessions by ID.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*mcp.SSEServerTransport
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*mcp.SSEServerTransport)}
}

func (r *sessionRegistry) add(id string, t *mcp.SSEServerTransport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = t
}

func (r *sessionRegistry) get(id string) (*mcp.SSEServerTransport, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.sessions[id]
	return t, ok
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
