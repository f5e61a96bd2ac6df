// Package httpx expose les parties via une API JSON et un canal websocket.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"colonnes/game"
	"colonnes/internal/party"
)

const maxJSONBodyBytes int64 = 1 << 16

var errMissingColumn = errors.New("missing column")

// Server relie le registre de parties au HTTP.
type Server struct {
	registry *party.Registry
	logger   *zap.Logger
	upgrader websocket.Upgrader
	srvMu    sync.Mutex
	srv      *http.Server
}

// NewServer construit un serveur sur le registre donné.
func NewServer(registry *party.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		registry: registry,
		logger:   logger,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Handler retourne le routeur complet.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/party", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", s.handleState)
			r.Delete("/", s.handleDelete)
			r.Post("/capture", s.handleCapture)
			r.Post("/click", s.handleClick)
			r.Post("/reset", s.handleReset)
		})
	})
	r.Get("/ws/{code}", s.handleWS)
	return r
}

// Listen démarre le serveur HTTP et bloque jusqu'à son arrêt.
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

	s.logger.Info("http listening", zap.String("addr", addr))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close arrête proprement le serveur HTTP.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

type createRequest struct {
	Mode string `json:"mode"`
}

type captureRequest struct {
	Column *int   `json:"column"`
	Player string `json:"player"`
}

type clickRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Player string  `json:"player"`
}

type errorResponse struct {
	Error string          `json:"error"`
	State *party.Snapshot `json:"state,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	mode := game.ModeSolo
	if req.Mode != "" {
		m, ok := game.ParseMode(req.Mode)
		if !ok {
			writeError(w, http.StatusBadRequest, errors.New("mode must be solo or multi"), nil)
			return
		}
		mode = m
	}
	p, err := s.registry.Create(r.Context(), mode)
	if err != nil {
		s.fail(w, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, p.Snapshot())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	p, ok := s.party(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p.Snapshot())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Remove(chi.URLParam(r, "code")); err != nil {
		s.fail(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	p, ok := s.party(w, r)
	if !ok {
		return
	}
	var req captureRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	if req.Column == nil {
		writeError(w, http.StatusBadRequest, errMissingColumn, nil)
		return
	}
	pl, err := parsePlayer(req.Player)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	snap, err := p.Capture(pl, *req.Column)
	if err != nil {
		s.fail(w, err, &snap)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	p, ok := s.party(w, r)
	if !ok {
		return
	}
	var req clickRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	pl, err := parsePlayer(req.Player)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	snap, err := p.Click(pl, req.X, req.Y, req.Width, req.Height)
	if err != nil {
		s.fail(w, err, &snap)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	p, ok := s.party(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p.Reset())
}

func (s *Server) party(w http.ResponseWriter, r *http.Request) (*party.Party, bool) {
	p, err := s.registry.Get(chi.URLParam(r, "code"))
	if err != nil {
		s.fail(w, err, nil)
		return nil, false
	}
	return p, true
}

// fail traduit une erreur métier en statut HTTP.
func (s *Server) fail(w http.ResponseWriter, err error, snap *party.Snapshot) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, party.ErrPartyNotFound):
		status = http.StatusNotFound
	case errors.Is(err, party.ErrNotYourTurn),
		errors.Is(err, party.ErrGameOver),
		errors.Is(err, party.ErrIllegalCapture):
		status = http.StatusConflict
	case errors.Is(err, party.ErrOutsideBoard), errors.Is(err, party.ErrBadPlayer):
		status = http.StatusBadRequest
	case errors.Is(err, party.ErrTooManyParties):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeError(w, status, err, snap)
}

func parsePlayer(s string) (game.Player, error) {
	if s == "" {
		return game.PlayerA, nil
	}
	pl, ok := game.ParsePlayer(s)
	if !ok {
		return game.PlayerTie, party.ErrBadPlayer
	}
	return pl, nil
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error, snap *party.Snapshot) {
	writeJSON(w, status, errorResponse{Error: err.Error(), State: snap})
}
