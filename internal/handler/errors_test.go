package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	serve := func(method string, err error) (*httptest.ResponseRecorder, string) {
		var buf bytes.Buffer
		l := logrus.New()
		l.SetOutput(&buf)
		l.SetFormatter(&logrus.JSONFormatter{})

		e := echo.New()
		c := e.NewContext(httptest.NewRequest(method, "/x", nil), httptest.NewRecorder())
		rec := c.Response().Writer.(*httptest.ResponseRecorder)
		ErrorHandler(logrus.NewEntry(l))(err, c)
		return rec, buf.String()
	}

	t.Run("http errors keep their status", func(t *testing.T) {
		rec, logged := serve(http.MethodGet, echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.JSONEq(t, `{"message":"rate limit exceeded"}`, rec.Body.String())
		assert.Empty(t, logged)
	})

	t.Run("wrapped http errors are unwrapped", func(t *testing.T) {
		rec, _ := serve(http.MethodGet, errors.Wrap(echo.ErrNotFound, "lookup"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("anything else is logged and hidden", func(t *testing.T) {
		rec, logged := serve(http.MethodGet, errors.New("dial tcp: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
		assert.Contains(t, logged, "connection refused")
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("head has no body", func(t *testing.T) {
		rec, _ := serve(http.MethodHead, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})
}

func TestErrorHandler_CommittedResponseIsLeftAlone(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
	_ = c.String(http.StatusOK, "partial")

	ErrorHandler(quietLog())(errors.New("late"), c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
