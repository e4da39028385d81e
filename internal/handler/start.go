package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started quiz",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)

	view, err := h.sessions.Restart(sessionKey(c))
	if err != nil {
		h.logger.Error("Failed to start quiz", zap.Error(err))
		return c.Send(msgFailure)
	}

	return c.Send(formatView(view), quizMarkup(view))
}

// handleReset handles /reset and the reset button
func (h *Handler) handleReset(c tele.Context) error {
	view, err := h.sessions.Reset(sessionKey(c))
	if err != nil {
		h.logger.Error("Failed to reset quiz", zap.Error(err))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: msgFailure})
		}
		return c.Send(msgFailure)
	}

	if c.Callback() != nil {
		return h.editView(c, view)
	}
	return c.Send(formatView(view), quizMarkup(view))
}
