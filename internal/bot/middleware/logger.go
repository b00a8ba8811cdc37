package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logger middleware for logging all incoming updates
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			// get user info
			user := c.Sender()
			var userID int64
			var username string

			if user != nil {
				userID = user.ID
				username = user.Username
			}

			// get update info
			message := c.Message()
			var updateText string
			var updateType string

			if message != nil {
				updateText = message.Text
				updateType = "message"
			}

			callback := c.Callback()
			if callback != nil {
				updateText = callback.Data
				updateType = "callback"
			}

			err := next(c)

			duration := time.Since(start)

			fields := []zap.Field{
				zap.Int64("user_id", userID),
				zap.String("username", username),
				zap.String("type", updateType),
				zap.String("text", updateText),
				zap.Duration("duration", duration),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				logger.Error("handler error", fields...)
			} else {
				logger.Info("update handled", fields...)
			}

			return err
		}
	}
}
