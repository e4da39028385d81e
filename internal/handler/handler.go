package handler

import (
	"fmt"

	"vocabquiz/internal/middleware"
	"vocabquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler renders quiz sessions as Telegram messages
type Handler struct {
	bot      *tele.Bot
	sessions *service.SessionManager
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	sessions *service.SessionManager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:      bot,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.Telegram(h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/reset", h.handleReset)

	// Answers
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnReset, h.handleReset)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// sessionKey identifies the quiz session of a chat
func sessionKey(c tele.Context) string {
	return fmt.Sprintf("tg:%d", c.Chat().ID)
}

// Inline keyboard buttons
var (
	btnReset = tele.Btn{
		Unique: "reset",
		Text:   "🔄 Reset",
	}
)
