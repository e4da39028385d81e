package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	cookieName = "vocabquiz_session"
	cookieTTL  = 30 * 24 * time.Hour
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Handler renders quiz sessions as HTML pages
type Handler struct {
	sessions  *service.SessionManager
	templates *template.Template
	logger    *zap.Logger
}

// NewHandler creates a new web handler with the bundled templates
func NewHandler(sessions *service.SessionManager, logger *zap.Logger) (*Handler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	return &Handler{
		sessions:  sessions,
		templates: templates,
		logger:    logger,
	}, nil
}

// Register wires all routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.ShowQuiz)
	mux.HandleFunc("POST /answer", h.SubmitAnswer)
	mux.HandleFunc("POST /direction", h.ChangeDirection)
	mux.HandleFunc("POST /groups", h.ToggleGroup)
	mux.HandleFunc("POST /reset", h.Reset)
	mux.HandleFunc("POST /wordset", h.SwitchWordSet)
	mux.HandleFunc("GET /healthz", h.Health)
}

// sessionKey returns the quiz session key of the browser,
// issuing a new cookie when none or a malformed one is present
func (h *Handler) sessionKey(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return "web:" + id.String()
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, sessionCookie(r, cookieName, id, time.Now().Add(cookieTTL)))
	return "web:" + id
}

// ShowQuiz renders the current session
func (h *Handler) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Current(h.sessionKey(w, r))
	if err != nil {
		h.respondWithError(w, http.StatusInternalServerError, "Failed to load quiz", err)
		return
	}

	if err := h.templates.ExecuteTemplate(w, "quiz.tmpl", view); err != nil {
		h.logger.Error("Failed to render quiz template", zap.Error(err))
	}
}

// SubmitAnswer evaluates the typed answer; the value is used as submitted
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	h.handleForm(w, r, func(key string) (domain.View, error) {
		return h.sessions.Submit(key, r.PostFormValue("answer"))
	})
}

// ChangeDirection switches the test direction
func (h *Handler) ChangeDirection(w http.ResponseWriter, r *http.Request) {
	h.handleForm(w, r, func(key string) (domain.View, error) {
		return h.sessions.ChangeDirection(key, r.PostFormValue("direction"))
	})
}

// ToggleGroup sets a group's active flag from the "group" and "active" fields
func (h *Handler) ToggleGroup(w http.ResponseWriter, r *http.Request) {
	h.handleForm(w, r, func(key string) (domain.View, error) {
		active := r.PostFormValue("active") == "true"
		return h.sessions.ToggleGroup(key, r.PostFormValue("group"), active)
	})
}

// Reset starts the session over with default direction and filters
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.handleForm(w, r, h.sessions.Reset)
}

// SwitchWordSet starts over with another word set
func (h *Handler) SwitchWordSet(w http.ResponseWriter, r *http.Request) {
	h.handleForm(w, r, func(key string) (domain.View, error) {
		return h.sessions.SwitchWordSet(key, r.PostFormValue("wordset"))
	})
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleForm applies a quiz event and redirects back to the quiz page
func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request, event func(key string) (domain.View, error)) {
	if err := r.ParseForm(); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	_, err := event(h.sessionKey(w, r))
	switch {
	case errors.Is(err, domain.ErrUnsupportedWordSet):
		h.respondWithError(w, http.StatusBadRequest, "Unknown word set", err)
		return
	case errors.Is(err, domain.ErrInvalidDirection):
		h.respondWithError(w, http.StatusBadRequest, "Unknown quiz direction", err)
		return
	case err != nil:
		h.respondWithError(w, http.StatusInternalServerError, "Failed to update quiz", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) respondWithError(w http.ResponseWriter, status int, userMsg string, err error) {
	if status < http.StatusInternalServerError {
		h.logger.Warn(userMsg, zap.Int("status", status), zap.Error(err))
	} else {
		h.logger.Error(userMsg, zap.Int("status", status), zap.Error(err))
	}
	http.Error(w, userMsg, status)
}
