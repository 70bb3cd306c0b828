package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Health returns a health-check endpoint used by load balancers and
// monitoring systems.  It answers a plain text "ok" when the database
// responds within two seconds and 503 otherwise.  A nil pinger only reports
// that the process is up.
func Health(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx, readpref.Primary()); err != nil {
				return c.String(http.StatusServiceUnavailable, "database unavailable")
			}
		}
		return c.String(http.StatusOK, "ok") // String writes plain text
	}
}
