package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText treats every non-command message as an answer.
// The text is compared as sent, without trimming.
func (h *Handler) handleText(c tele.Context) error {
	text := c.Text()

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	view, err := h.sessions.Submit(sessionKey(c), text)
	if err != nil {
		h.logger.Error("Failed to evaluate answer",
			zap.Error(err),
			zap.Int64("user_id", c.Sender().ID),
		)
		return c.Send(msgFailure)
	}

	return c.Send(formatView(view), quizMarkup(view))
}
