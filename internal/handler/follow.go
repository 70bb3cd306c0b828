package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tuiter/internal/model"
	"github.com/iliyamo/tuiter/internal/repository"
)

// FollowHandler exposes follow edges between users.
type FollowHandler struct {
	Repo repository.FollowRepository
}

func NewFollowHandler(repo repository.FollowRepository) *FollowHandler {
	if repo == nil {
		panic("nil repository passed to NewFollowHandler")
	}
	return &FollowHandler{Repo: repo}
}

// FollowUser handles POST /follow.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	var f model.Follow
	if err := c.Bind(&f); err != nil {
		return err
	}
	created, err := h.Repo.Create(c.Request().Context(), &f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

// UnfollowUser handles DELETE /follow/:fid.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	st, err := h.Repo.Delete(c.Request().Context(), c.Param("fid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// FindAllFollowing handles GET /follow/user/:uid/following: the edges where
// uid is the follower.
func (h *FollowHandler) FindAllFollowing(c echo.Context) error {
	out, err := h.Repo.FindAllFollowing(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// FindAllFollowed handles GET /follow/user/:uid/followed: the edges where uid
// is followed.
func (h *FollowHandler) FindAllFollowed(c echo.Context) error {
	out, err := h.Repo.FindAllFollowed(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// RemoveAllFollowers handles DELETE /follow/user/:uid/removeallfollower.
func (h *FollowHandler) RemoveAllFollowers(c echo.Context) error {
	st, err := h.Repo.DeleteAllFollowers(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// UpdateFollow handles PUT /follow/:fid.
func (h *FollowHandler) UpdateFollow(c echo.Context) error {
	var patch model.FollowPatch
	if err := c.Bind(&patch); err != nil {
		return err
	}
	st, err := h.Repo.Update(c.Request().Context(), c.Param("fid"), &patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
