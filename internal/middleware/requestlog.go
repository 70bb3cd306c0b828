package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// RequestID tags every request and response with an X-Request-Id.  A valid
// id sent by the client is kept.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLogger writes one structured line per request.  It must run inside
// RequestID so the id is available, and the error it sees is the one the
// error handler will turn into the response.
func RequestLogger(log *logrus.Entry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = 500
				}
			}
			entry := log.WithFields(logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"route":      c.Path(),
				"uri":        c.Request().RequestURI,
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
				"remote_ip":  c.RealIP(),
			})
			switch {
			case status >= 500:
				entry.Error("request")
			case status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
			return err
		}
	}
}
