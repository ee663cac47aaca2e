// internal/httpserver/sessions.go
//
// Session endpoints:
//   - POST   /sessions              create (optionally seeded or daily), returns token
//   - GET    /sessions/{id}         current state view
//   - POST   /sessions/{id}/start   StartGame
//   - POST   /sessions/{id}/skip    SkipWord
//   - POST   /sessions/{id}/end     EndGame
//   - POST   /sessions/{id}/guess   UpdateGuess {"guess": "..."}
//   - DELETE /sessions/{id}
//
// Actions that are not valid for the session's phase are not errors: the
// engine ignores them and the unchanged state is returned with 200.

package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/unscramble/internal/daily"
	"github.com/robalobadob/unscramble/internal/game"
	"github.com/robalobadob/unscramble/internal/store"
)

// createSessionReq is the optional body of POST /sessions.
type createSessionReq struct {
	Seed  *int64 `json:"seed" validate:"omitempty,gt=0,excluded_with=Daily"`
	Daily bool   `json:"daily"`
}

type createSessionRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	Seed      int64     `json:"seed"`
	Daily     bool      `json:"daily"`
	DateKey   string    `json:"date,omitempty"`
	State     stateView `json:"state"`
}

type guessReq struct {
	Guess string `json:"guess" validate:"max=256"`
}

// decodeBody decodes an optional JSON body; an empty body leaves v untouched.
func (s *Server) decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return s.validate.Struct(v)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionReq
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}

	opts := store.Options{Daily: req.Daily}
	res := createSessionRes{Daily: req.Daily}
	switch {
	case req.Daily:
		now := s.now()
		opts.Seed = daily.Seed(now, s.cfg.DailySalt)
		res.DateKey = daily.DateKey(now)
	case req.Seed != nil:
		opts.Seed = *req.Seed
	}

	sess, err := s.store.Create(r.Context(), opts)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	state, err := s.store.Dispatch(r.Context(), sess.ID,
		game.LoadWordPack{Words: s.lists.Pack},
		game.LoadBannedWords{Words: s.lists.Banned},
	)
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("load word lists")
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}

	tok, exp, err := s.signToken(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)

	res.SessionID = sess.ID
	res.Token = tok
	res.Seed = sess.Seed
	res.State = viewOf(state)
	log.Info().Str("session", sess.ID).Bool("daily", req.Daily).Msg("session started")
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(sessionFrom(r).State()))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), sessionFrom(r).ID); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, game.StartGame{})
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, game.SkipWord{})
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, game.EndGame{})
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := s.decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	s.dispatch(w, r, game.UpdateGuess{Text: req.Guess})
}

// dispatch applies a to the request's session and writes the resulting view.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, a game.Action) {
	state, err := s.store.Dispatch(r.Context(), sessionFrom(r).ID, a)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("dispatch")
		writeError(w, http.StatusInternalServerError, "dispatch_failed")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(state))
}
