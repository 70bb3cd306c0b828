package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tuiter/internal/model"
	"github.com/iliyamo/tuiter/internal/repository"
)

// BookmarkHandler exposes the tuits a user saved.
type BookmarkHandler struct {
	Repo repository.BookmarkRepository
}

func NewBookmarkHandler(repo repository.BookmarkRepository) *BookmarkHandler {
	if repo == nil {
		panic("nil repository passed to NewBookmarkHandler")
	}
	return &BookmarkHandler{Repo: repo}
}

// CreateBookmark handles POST /bookmark.
func (h *BookmarkHandler) CreateBookmark(c echo.Context) error {
	var b model.Bookmark
	if err := c.Bind(&b); err != nil {
		return err
	}
	created, err := h.Repo.Create(c.Request().Context(), &b)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// Unbookmark handles DELETE /bookmark/:bid.
func (h *BookmarkHandler) Unbookmark(c echo.Context) error {
	st, err := h.Repo.Delete(c.Request().Context(), c.Param("bid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// FindBookmarkTuitsByUser handles GET /bookmark/user/:uid.  Each bookmark
// carries its whole tuit.
func (h *BookmarkHandler) FindBookmarkTuitsByUser(c echo.Context) error {
	out, err := h.Repo.FindTuitsByUser(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// UnbookmarkAllByUser handles DELETE /bookmark/user/:uid/unbookmarkall.
func (h *BookmarkHandler) UnbookmarkAllByUser(c echo.Context) error {
	st, err := h.Repo.DeleteAllByUser(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// UpdateBookmark handles PUT /bookmark/:bid.
func (h *BookmarkHandler) UpdateBookmark(c echo.Context) error {
	var patch model.BookmarkPatch
	if err := c.Bind(&patch); err != nil {
		return err
	}
	st, err := h.Repo.Update(c.Request().Context(), c.Param("bid"), &patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
