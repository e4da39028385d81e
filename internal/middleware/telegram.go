package middleware

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Telegram logs every update and turns handler panics into errors
func Telegram(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			start := time.Now()

			fields := []zap.Field{}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}
			if cb := c.Callback(); cb != nil {
				fields = append(fields, zap.String("callback", cb.Data))
			}

			defer func() {
				if r := recover(); r != nil {
					logger.Error("Recovered from panic in update handler",
						append(fields, zap.Any("panic", r))...,
					)
					err = fmt.Errorf("panic in update handler: %v", r)
					return
				}

				fields = append(fields, zap.Duration("duration", time.Since(start)))
				if err != nil {
					logger.Warn("Update handled with error", append(fields, zap.Error(err))...)
					return
				}
				logger.Debug("Update handled", fields...)
			}()

			return next(c)
		}
	}
}
