// Package preview serves generation over WebSocket for the editor
// UI: each incoming message is a settings document, each reply the
// generated layout.
package preview

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/DiceT/ruins-and-realms-sub003/internal/analysis"
	"github.com/DiceT/ruins-and-realms-sub003/internal/config"
	"github.com/DiceT/ruins-and-realms-sub003/internal/dungeon"
	"github.com/DiceT/ruins-and-realms-sub003/internal/export"
	"github.com/DiceT/ruins-and-realms-sub003/internal/logger"
)

// Server accepts WebSocket connections and answers settings payloads
// with generated layouts.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
}

// NewServer creates a preview server for the given listen address.
func NewServer(addr string) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The preview endpoint is local tooling; any origin may
			// connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start listens and serves until the listener fails.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.handleGenerate)

	logger.Info("preview server listening", "address", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// Handler returns the HTTP handler for the generate endpoint.
func (s *Server) Handler() http.HandlerFunc {
	return s.handleGenerate
}

// handleGenerate upgrades the connection and serves generation
// requests until the client disconnects.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	format := r.URL.Query().Get("format")
	logger.Info("preview client connected", "remote_addr", conn.RemoteAddr().String())

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Debug("preview client disconnected", "error", err)
			return
		}

		reply, err := Generate(msg, format)
		if err != nil {
			logger.Warning("preview generation failed", "error", err)
			reply = []byte("error: " + err.Error())
		}
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			logger.Debug("preview write failed", "error", err)
			return
		}
	}
}

// Generate runs one settings payload through the pipeline and
// serializes the result. Format "ascii" returns the text render,
// anything else the YAML document.
func Generate(payload []byte, format string) ([]byte, error) {
	settings, err := config.Import(payload)
	if err != nil {
		return nil, err
	}

	data, err := dungeon.Generate(settings)
	if err != nil {
		return nil, fmt.Errorf("preview: generate: %w", err)
	}

	if format == "ascii" {
		return []byte(export.Render(data)), nil
	}
	return export.FromDungeon(data, analysis.Analyze(data)).Marshal()
}
