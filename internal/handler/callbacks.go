package handler

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Callback actions, encoded as "<action>_<argument>" in button uniques
const (
	actionDirection = "dir"
	actionGroup     = "group"
	actionGroupAt   = "groupat"
	actionWordSet   = "wordset"
	actionReset     = "reset"
)

// maxCallbackData is Telegram's callback data limit in bytes,
// including the leading \f telebot adds
const maxCallbackData = 64

// groupCallback addresses a group by its value, or by word set and
// position when the value does not fit into the callback data
func groupCallback(wordSet string, index int, value string) string {
	data := actionGroup + "_" + value
	if len(data)+1 <= maxCallbackData {
		return data
	}
	return actionGroupAt + "_" + strconv.Itoa(index) + "_" + wordSet
}

// invalidRequestText is the callback answer for a rejected word set or direction
func invalidRequestText(err error) string {
	if errors.Is(err, domain.ErrUnsupportedWordSet) {
		return msgUnknownWordSet
	}
	return msgUnknownDirection
}

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallback splits cleaned callback data into action and argument
func parseCallback(data string) (string, string) {
	action, arg, _ := strings.Cut(data, "_")
	return action, arg
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// The same keyboard state was rendered already
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// editView redraws the quiz message in place
func (h *Handler) editView(c tele.Context, view domain.View) error {
	text, markup := formatView(view), quizMarkup(view)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleCallback handles direction, group, word set and reset buttons
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	if callback.Unique != "" {
		data = callback.Unique
	}

	key := sessionKey(c)
	action, arg := parseCallback(data)

	var (
		view domain.View
		err  error
	)
	switch action {
	case actionDirection:
		view, err = h.sessions.ChangeDirection(key, arg)
	case actionGroup:
		view, err = h.sessions.FlipGroup(key, arg)
	case actionGroupAt:
		pos, wordSet, _ := strings.Cut(arg, "_")
		index, convErr := strconv.Atoi(pos)
		if convErr != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Unknown group"})
		}
		view, err = h.sessions.FlipGroupAt(key, wordSet, index)
	case actionWordSet:
		view, err = h.sessions.SwitchWordSet(key, arg)
	case actionReset:
		view, err = h.sessions.Reset(key)
	default:
		h.logger.Warn("Unhandled callback",
			zap.String("data", data),
			zap.String("unique", callback.Unique),
		)
		return c.Respond()
	}

	if service.IsInvalidRequest(err) {
		h.logger.Warn("Rejected quiz event",
			zap.String("action", action),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: invalidRequestText(err)})
	}
	if err != nil {
		h.logger.Error("Failed to apply quiz event",
			zap.String("action", action),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgFailure})
	}

	return h.editView(c, view)
}
