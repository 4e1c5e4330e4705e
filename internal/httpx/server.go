// Package httpx serves games over HTTP. Each game lives in memory under a
// short id; moves are posted as JSON and every applied move is pushed to
// the game's websocket subscribers.
package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/output"
)

const (
	maxJSONBodyBytes int64 = 1 << 20
	wsWriteTimeout         = 5 * time.Second
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// Server holds the games being played and the HTTP routes that drive them.
type Server struct {
	cfg      *config.Config
	log      *log.Logger
	router   *mux.Router
	upgrader websocket.Upgrader

	mu     sync.Mutex
	games  map[string]*session
	nextID int

	srvMu sync.Mutex
	srv   *http.Server
}

// session is one served game and its websocket subscribers. mu guards
// both, and serialises writes to each connection.
type session struct {
	mu      sync.Mutex
	game    *game.Game
	clients map[*websocket.Conn]struct{}
}

// MoveEvent is pushed to websocket subscribers after every applied move.
type MoveEvent struct {
	Game   string           `json:"game"`
	Move   *output.MoveView `json:"move"`
	FEN    string           `json:"fen"`
	Check  bool             `json:"check"`
	Winner string           `json:"winner,omitempty"`
}

// NewServer builds a Server using cfg for game defaults and limits.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		log:    cfg.Logger(),
		router: mux.NewRouter(),
		games:  make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// Non-JSON routes first; the /games subrouter claims the whole prefix.
	s.router.HandleFunc("/games/{id}/pgn", s.handlePGN).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/ws", s.handleWS).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	api := s.router.PathPrefix("/games").Subrouter()
	api.Use(jsonMiddleware)
	api.HandleFunc("", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/{id}", s.handleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/{id}/moves", s.handleMove).Methods(http.MethodPost)
	api.HandleFunc("/{id}/forfeit", s.handleForfeit).Methods(http.MethodPost)
}

// Handler returns the routes wrapped with access logging and panic
// recovery.
func (s *Server) Handler() http.Handler {
	var access io.Writer = io.Discard
	if s.cfg.Verbose(config.Summary) && s.cfg.LogFile != nil {
		access = s.cfg.LogFile
	}
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(s.log))
	return handlers.LoggingHandler(access, recovery(s.router))
}

// Listen serves until Close is called.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close shuts the server down gracefully and drops websocket subscribers.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()

	s.mu.Lock()
	sessions := maps.Values(s.games)
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.mu.Lock()
		for conn := range sess.clients {
			conn.Close()
			delete(sess.clients, conn)
		}
		sess.mu.Unlock()
	}

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Games returns the ids of the games being served, oldest first.
func (s *Server) Games() []string {
	s.mu.Lock()
	ids := maps.Keys(s.games)
	s.mu.Unlock()
	slices.Sort(ids)
	return ids
}

func (s *Server) lookup(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.games[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownGame, "game %q", id)
	}
	return sess, nil
}

// ---- JSON helpers ----

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", apiCSP)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrUnknownGame):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrIllegalMove), errors.Is(err, errors.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, errors.ErrInvalidCoordinate), errors.Is(err, errors.ErrInvalidFEN):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decodeBody reads a JSON body into v. An empty body leaves v unchanged.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "request too large")
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid json")
	return false
}

func (s *Server) view(id string, sess *session) *output.BoardView {
	v := sess.game.View()
	v.ID = id
	return v
}

// ---- API: games ----

type createBody struct {
	FEN string `json:"fen"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createBody
	if !decodeBody(w, r, &body) {
		return
	}

	g := game.New(s.cfg)
	if fen := strings.TrimSpace(body.FEN); fen != "" {
		var err error
		if g, err = game.NewFromFEN(s.cfg, fen); err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
	}

	s.mu.Lock()
	if limit := s.cfg.MaxGames; limit > 0 && len(s.games) >= limit {
		s.mu.Unlock()
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("already serving %d games", limit))
		return
	}
	s.nextID++
	id := fmt.Sprintf("g%06d", s.nextID)
	sess := &session{game: g, clients: make(map[*websocket.Conn]struct{})}
	s.games[id] = sess
	s.mu.Unlock()

	if s.cfg.Verbose(config.PerMove) {
		s.log.Printf("game %s created from %s", id, g.StartFEN())
	}
	sess.mu.Lock()
	v := s.view(id, sess)
	sess.mu.Unlock()
	w.Header().Set("Location", "/games/"+id)
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"games": s.Games()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	sess.mu.Lock()
	v := s.view(id, sess)
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	sess, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, errors.Wrapf(errors.ErrUnknownGame, "game %q", id).Error())
		return
	}
	sess.mu.Lock()
	for conn := range sess.clients {
		conn.Close()
	}
	sess.clients = nil
	sess.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// ---- API: moves ----

type moveBody struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	var body moveBody
	if !decodeBody(w, r, &body) {
		return
	}
	from, err := chess.FromAlgebraic(strings.ToLower(strings.TrimSpace(body.From)))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from square: "+err.Error())
		return
	}
	to, err := chess.FromAlgebraic(strings.ToLower(strings.TrimSpace(body.To)))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to square: "+err.Error())
		return
	}
	promotion := s.cfg.Promotion
	if text := strings.TrimSpace(body.Promotion); text != "" {
		promotion = chess.NoKind
		if len(text) == 1 {
			promotion = chess.KindFromLetter(text[0])
		}
		if !promotion.IsPromotionTarget() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid promotion choice %q", text))
			return
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	rec, err := sess.game.ApplyPromoting(from, to, promotion)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	v := s.view(id, sess)
	s.broadcast(sess, MoveEvent{
		Game:   id,
		Move:   output.NewMoveView(rec),
		FEN:    v.FEN,
		Check:  v.Check,
		Winner: v.Winner,
	})
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleForfeit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.game.Over() {
		writeError(w, http.StatusConflict, errors.ErrGameOver.Error())
		return
	}
	sess.game.Forfeit()
	writeJSON(w, http.StatusOK, s.view(id, sess))
}

func (s *Server) handlePGN(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	sess.mu.Lock()
	pgn, err := game.ExportPGN(sess.game)
	sess.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/x-chess-pgn")
	_, _ = io.WriteString(w, pgn)
}

// ---- websocket ----

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade for %s: %v", id, err)
		return
	}

	sess.mu.Lock()
	if sess.clients == nil {
		sess.mu.Unlock()
		conn.Close()
		return
	}
	sess.clients[conn] = struct{}{}
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)) //nolint:errcheck
	err = conn.WriteJSON(s.view(id, sess))
	sess.mu.Unlock()
	if err != nil {
		s.drop(sess, conn)
		return
	}

	// Subscribers only listen; reading keeps control frames flowing and
	// notices when the peer goes away.
	go func() {
		defer s.drop(sess, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast sends ev to every subscriber of sess. Callers hold sess.mu.
func (s *Server) broadcast(sess *session, ev MoveEvent) {
	for conn := range sess.clients {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)) //nolint:errcheck
		if err := conn.WriteJSON(ev); err != nil {
			if s.cfg.Verbose(config.PerMove) {
				s.log.Printf("websocket %s: %v", conn.RemoteAddr(), err)
			}
			conn.Close()
			delete(sess.clients, conn)
		}
	}
}

func (s *Server) drop(sess *session, conn *websocket.Conn) {
	sess.mu.Lock()
	delete(sess.clients, conn)
	sess.mu.Unlock()
	conn.Close()
}
