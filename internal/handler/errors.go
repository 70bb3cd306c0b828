package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrorHandler is the one place where a failed request becomes a response.
// Handlers and repositories never recover from errors; they return them and
// end up here.  Echo's own errors (unknown route, bad body, rate limit) keep
// their status.  Everything else is logged and answered with a bare 500.
func ErrorHandler(log *logrus.Entry) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var msg any = http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = he.Message
		} else {
			log.WithFields(logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"route":      c.Path(),
			}).WithError(err).Error("unhandled request failure")
		}
		if s, ok := msg.(string); ok {
			msg = echo.Map{"message": s}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, msg)
		}
		if werr != nil {
			log.WithError(werr).Warn("write error response")
		}
	}
}
