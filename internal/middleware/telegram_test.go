package middleware

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"
)

func TestTelegram(t *testing.T) {
	bot, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)

	tests := []struct {
		name          string
		handler       tele.HandlerFunc
		expectedError bool
		expectedLog   string
	}{
		{
			name:        "success",
			handler:     func(c tele.Context) error { return nil },
			expectedLog: "Update handled",
		},
		{
			name:          "handler error",
			handler:       func(c tele.Context) error { return fmt.Errorf("send failed") },
			expectedError: true,
			expectedLog:   "Update handled with error",
		},
		{
			name:          "panic is recovered",
			handler:       func(c tele.Context) error { panic("boom") },
			expectedError: true,
			expectedLog:   "Recovered from panic in update handler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			h := Telegram(zap.New(core))(tt.handler)

			c := bot.NewContext(tele.Update{
				Message: &tele.Message{
					Sender: &tele.User{ID: 123},
					Chat:   &tele.Chat{ID: 123},
					Text:   "dog",
				},
			})

			err := h(c)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			entries := logs.FilterMessage(tt.expectedLog).All()
			if assert.Len(t, entries, 1) {
				assert.Equal(t, int64(123), entries[0].ContextMap()["user_id"])
			}
		})
	}
}
