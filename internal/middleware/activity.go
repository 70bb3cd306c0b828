package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/tuiter/internal/queue"
)

// EventPublisher is satisfied by *service.ActivityPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

// Activity publishes an ActivityEvent after every successful POST, PUT,
// PATCH or DELETE.  Publishing happens off the request path and its failures
// never change the response.  A nil publisher disables the middleware.
func Activity(pub EventPublisher, log *logrus.Entry) echo.MiddlewareFunc {
	if pub == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			req := c.Request()
			status := c.Response().Status
			if queue.ActionFor(req.Method) == "" || status >= http.StatusBadRequest {
				return nil
			}

			var params map[string]string
			if names := c.ParamNames(); len(names) > 0 {
				values := c.ParamValues()
				params = make(map[string]string, len(names))
				for i, n := range names {
					if i < len(values) {
						params[n] = values[i]
					}
				}
			}
			ev := queue.NewActivityEvent(req.Method, c.Path(), req.URL.Path, params, status,
				c.Response().Header().Get(echo.HeaderXRequestID))

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := pub.Publish(ctx, ev); err != nil {
					log.WithError(err).WithField("event_id", ev.ID).Debug("publish activity")
				}
			}()
			return nil
		}
	}
}
