package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	pingInterval    = 30 * time.Second
	pongWait        = 2 * pingInterval
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type sessionUseCase interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)

	MakeTurn(ctx context.Context, id string, cell entity.Cell) (*entity.TurnResult, error)
	ResetBoard(ctx context.Context, id string) (*entity.Session, error)
	ToggleAI(ctx context.Context, id string) (*entity.Session, error)
	ToggleScore(ctx context.Context, id string) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, payload *RequestPayload) (*ResponsePayload, error)

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionSessionNew] = server.handleNewSession
	server.handlers[actionSessionGet] = server.handleGetSession
	server.handlers[actionSessionMove] = server.handleMove
	server.handlers[actionSessionReset] = server.handleReset
	server.handlers[actionSessionAI] = server.handleToggleAI
	server.handlers[actionSessionScore] = server.handleToggleScore

	return server
}

// Handler returns the HTTP handler serving the socket on /ws.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConn(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConn(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConn", "remote", r.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go that.keepAlive(ctx, conn)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// keepAlive pings the client until ctx is done. WriteControl may run
// concurrently with the reply writer.
func (that *Server) keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = that.reply(conn, "", &ResponsePayload{Error: errBadMessage.Error()}); err != nil {
				return err
			}
			continue
		}

		response := that.dispatch(ctx, &message)
		if err = that.reply(conn, message.Action, response); err != nil {
			return err
		}
	}
}

func (that *Server) reply(conn *websocket.Conn, action string, payload *ResponsePayload) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := conn.WriteJSON(newReply(action, payload)); err != nil {
		return fmt.Errorf("failed to write reply: %w", err)
	}

	return nil
}
