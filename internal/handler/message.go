package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tuiter/internal/model"
	"github.com/iliyamo/tuiter/internal/repository"
)

// MessageHandler exposes direct messages between users.
type MessageHandler struct {
	Repo repository.MessageRepository
}

func NewMessageHandler(repo repository.MessageRepository) *MessageHandler {
	if repo == nil {
		panic("nil repository passed to NewMessageHandler")
	}
	return &MessageHandler{Repo: repo}
}

// CreateMessage handles POST /message.
func (h *MessageHandler) CreateMessage(c echo.Context) error {
	var m model.Message
	if err := c.Bind(&m); err != nil {
		return err
	}
	created, err := h.Repo.Create(c.Request().Context(), &m)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// FindSentMessages handles GET /message/user/:uid/sent.
func (h *MessageHandler) FindSentMessages(c echo.Context) error {
	out, err := h.Repo.FindSentByUser(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// FindReceivedMessages handles GET /message/user/:uid/received.
func (h *MessageHandler) FindReceivedMessages(c echo.Context) error {
	out, err := h.Repo.FindReceivedByUser(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// FindMessagesBetweenUsers handles GET /message/user/:uid/with/:ouid and
// returns the messages exchanged in both directions.
func (h *MessageHandler) FindMessagesBetweenUsers(c echo.Context) error {
	out, err := h.Repo.FindBetweenUsers(c.Request().Context(), c.Param("uid"), c.Param("ouid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateMessage handles PUT /message/:mid.
func (h *MessageHandler) UpdateMessage(c echo.Context) error {
	var patch model.MessagePatch
	if err := c.Bind(&patch); err != nil {
		return err
	}
	st, err := h.Repo.Update(c.Request().Context(), c.Param("mid"), &patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// DeleteMessage handles DELETE /message/:mid.
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	st, err := h.Repo.Delete(c.Request().Context(), c.Param("mid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
