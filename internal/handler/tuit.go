package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tuiter/internal/model"
	"github.com/iliyamo/tuiter/internal/repository"
)

// TuitHandler exposes the tuits resource.
type TuitHandler struct {
	Repo repository.TuitRepository
}

func NewTuitHandler(repo repository.TuitRepository) *TuitHandler {
	if repo == nil {
		panic("nil repository passed to NewTuitHandler")
	}
	return &TuitHandler{Repo: repo}
}

// FindAllTuits handles GET /tuits.
func (h *TuitHandler) FindAllTuits(c echo.Context) error {
	tuits, err := h.Repo.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tuits)
}

// FindTuitByID handles GET /tuits/:tid.
func (h *TuitHandler) FindTuitByID(c echo.Context) error {
	t, err := h.Repo.FindByID(c.Request().Context(), c.Param("tid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// FindTuitsByUser handles GET /tuits/users/:uid.
func (h *TuitHandler) FindTuitsByUser(c echo.Context) error {
	tuits, err := h.Repo.FindByUser(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tuits)
}

// CreateTuit handles POST /tuits.
func (h *TuitHandler) CreateTuit(c echo.Context) error {
	var t model.Tuit
	if err := c.Bind(&t); err != nil {
		return err
	}
	created, err := h.Repo.Create(c.Request().Context(), &t)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// UpdateTuit handles PUT /tuits/:tid.
func (h *TuitHandler) UpdateTuit(c echo.Context) error {
	var patch model.TuitPatch
	if err := c.Bind(&patch); err != nil {
		return err
	}
	st, err := h.Repo.Update(c.Request().Context(), c.Param("tid"), &patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// DeleteTuit handles DELETE /tuits/:tid.
func (h *TuitHandler) DeleteTuit(c echo.Context) error {
	st, err := h.Repo.Delete(c.Request().Context(), c.Param("tid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
