package api

import (
	"net/http"

	"go.uber.org/zap"

	"fee-wizard/adapters/storage"
	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

// session is the answer set of one browser, keyed by the cookie value
type session struct {
	id      string
	answers *types.AnswerSet
	fresh   bool // not yet in the store
}

// loadSession returns the caller's session, or a fresh one when the cookie is
// missing, malformed or points at an expired session.
func (s *Server) loadSession(r *http.Request) (*session, error) {
	c, err := r.Cookie(s.config.CookieName)
	if err != nil || !storage.ValidSessionID(c.Value) {
		return newSession(), nil
	}

	answers, err := s.store.Load(r.Context(), c.Value)
	if err != nil {
		if errors.IsType(err, errors.TypeNotFound) {
			s.logger.Debug("session expired", zap.String("session", c.Value))
			return newSession(), nil
		}
		return nil, err
	}
	return &session{id: c.Value, answers: answers}, nil
}

func newSession() *session {
	return &session{id: storage.NewSessionID(), answers: types.NewAnswerSet(), fresh: true}
}

// saveSession persists the answers and (re)issues the cookie. It must run
// before anything is written to w.
func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, sess *session) error {
	if err := s.store.Save(r.Context(), sess.id, sess.answers); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// dropSession deletes the caller's previous session, if any
func (s *Server) dropSession(r *http.Request) {
	c, err := r.Cookie(s.config.CookieName)
	if err != nil || !storage.ValidSessionID(c.Value) {
		return
	}
	if err := s.store.Delete(r.Context(), c.Value); err != nil {
		s.logger.Warn("delete session", zap.String("session", c.Value), zap.Error(err))
	}
}
