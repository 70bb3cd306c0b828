package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tuiter/internal/model"
	"github.com/iliyamo/tuiter/internal/repository"
)

// UserHandler exposes the users resource.  Every method calls exactly one
// repository operation and writes its result as-is.
type UserHandler struct {
	Repo repository.UserRepository
}

// NewUserHandler panics if repo is nil.
func NewUserHandler(repo repository.UserRepository) *UserHandler {
	if repo == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Repo: repo}
}

// FindAllUsers handles GET /users.
func (h *UserHandler) FindAllUsers(c echo.Context) error {
	users, err := h.Repo.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// FindUserByID handles GET /users/:uid.  A missing user is a 200 with a
// null body.
func (h *UserHandler) FindUserByID(c echo.Context) error {
	u, err := h.Repo.FindByID(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// CreateUser handles POST /users.  The stored user, password included, is
// echoed back.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var u model.User
	if err := c.Bind(&u); err != nil {
		return err
	}
	created, err := h.Repo.Create(c.Request().Context(), &u)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// UpdateUser handles PUT /users/:uid and responds with the update status.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var patch model.UserPatch
	if err := c.Bind(&patch); err != nil {
		return err
	}
	st, err := h.Repo.Update(c.Request().Context(), c.Param("uid"), &patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// DeleteUser handles DELETE /users/:uid and responds with the delete status.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	st, err := h.Repo.Delete(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
