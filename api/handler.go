package api

import (
	stderrors "errors"
	"io"
	"mime"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"fee-wizard/core/types"
	"fee-wizard/internal/errors"
)

// handleStartJourney handles POST /api/v1/journey
func (s *Server) handleStartJourney(w http.ResponseWriter, r *http.Request) {
	s.dropSession(r)
	sess := newSession()

	outcome, err := s.wizard.Submit(r.Context(), types.StepStart, sess.answers, nil)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.saveSession(w, r, sess); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.writeJSON(w, JourneyResponse{Next: outcome.Next}, http.StatusCreated)
}

// handleViewStep handles GET /api/v1/steps/{step}
func (s *Server) handleViewStep(w http.ResponseWriter, r *http.Request) {
	step := types.Step(r.PathValue("step"))

	sess, err := s.loadSession(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	cached := sess.answers.FeeDetails
	view, err := s.wizard.View(r.Context(), step, sess.answers)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	// Fee descriptors fetched for the view are cached in the answers. A new
	// session that gained nothing is not stored.
	if !sess.fresh || sess.answers.FeeDetails != cached {
		if err := s.saveSession(w, r, sess); err != nil {
			s.handleError(w, r, err)
			return
		}
	}

	s.writeJSON(w, view, http.StatusOK)
}

// handleSubmitStep handles POST /api/v1/steps/{step}
func (s *Server) handleSubmitStep(w http.ResponseWriter, r *http.Request) {
	step := types.Step(r.PathValue("step"))

	form, err := readForm(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, CodeInvalidBody, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.writeError(w, CodeInvalidBody, "request body must be a form or a JSON object of strings", http.StatusBadRequest)
		return
	}

	sess, err := s.loadSession(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	outcome, err := s.wizard.Submit(r.Context(), step, sess.answers, form)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !outcome.Valid() {
		s.writeJSON(w, ValidationResponse{
			Step:      step,
			ErrorList: outcome.Errors.List(),
			ErrorMap:  outcome.Errors.Map(),
			Form:      form,
		}, http.StatusUnprocessableEntity)
		return
	}

	if err := s.saveSession(w, r, sess); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, SubmitResponse{Next: outcome.Next, Cleared: outcome.Cleared}, http.StatusOK)
}

// handleResult handles GET /api/v1/result
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	breakdown, err := s.wizard.Result(r.Context(), sess.answers)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	// The result is shown exactly once; revisiting recalculates.
	sess.answers.Clear(types.FieldResult)
	if err := s.saveSession(w, r, sess); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.writeJSON(w, breakdown, http.StatusOK)
}

// handleError maps a failure to a response. Anything but an unknown route
// becomes the generic error; the cause is only logged.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	errType := errors.TypeOf(err)
	if errType == errors.TypeNotFound {
		s.writeError(w, CodeNotFound, err.Error(), http.StatusNotFound)
		return
	}

	s.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("type", string(errType)),
		zap.Error(err),
	)
	s.writeError(w, CodeError, GenericErrorText, http.StatusInternalServerError)
}

// readForm accepts either a urlencoded form or a JSON object of strings.
// An empty body is an empty form.
func readForm(r *http.Request) (map[string]string, error) {
	form := make(map[string]string)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for key, values := range r.PostForm {
			if len(values) > 0 {
				form[key] = values[0]
			}
		}
		return form, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&form); err != nil && err != io.EOF {
		return nil, err
	}
	return form, nil
}
