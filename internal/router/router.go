package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/tuiter/internal/handler" // import the handlers bound to each route
)

// Handlers bundles one handler per resource.  They are built once at startup
// and shared by every request.
type Handlers struct {
	Users     *handler.UserHandler
	Tuits     *handler.TuitHandler
	Follows   *handler.FollowHandler
	Bookmarks *handler.BookmarkHandler
	Messages  *handler.MessageHandler
}

// RegisterRoutes registers the health check and every resource route on the
// provided Echo instance.  None of the routes require authentication.
func RegisterRoutes(e *echo.Echo, db handler.Pinger, h Handlers) {
	// Map GET /healthz for load balancers and monitoring.
	e.GET("/healthz", handler.Health(db))

	RegisterUsers(e, h.Users)
	RegisterTuits(e, h.Tuits)
	RegisterFollows(e, h.Follows)
	RegisterBookmarks(e, h.Bookmarks)
	RegisterMessages(e, h.Messages)
}

// RegisterUsers registers the /users routes.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler) {
	e.GET("/users", u.FindAllUsers)
	e.GET("/users/:uid", u.FindUserByID)
	e.POST("/users", u.CreateUser)
	e.PUT("/users/:uid", u.UpdateUser)
	e.DELETE("/users/:uid", u.DeleteUser)
}

// RegisterTuits registers the /tuits routes.  The by-user listing lives
// under /tuits/users/:uid.
func RegisterTuits(e *echo.Echo, t *handler.TuitHandler) {
	e.GET("/tuits", t.FindAllTuits)
	e.GET("/tuits/:tid", t.FindTuitByID)
	e.GET("/tuits/users/:uid", t.FindTuitsByUser)
	e.POST("/tuits", t.CreateTuit)
	e.PUT("/tuits/:tid", t.UpdateTuit)
	e.DELETE("/tuits/:tid", t.DeleteTuit)
}

// RegisterFollows registers the /follow routes.  Following lists the edges
// where :uid is the follower, followed the edges where :uid is followed.
func RegisterFollows(e *echo.Echo, f *handler.FollowHandler) {
	e.POST("/follow", f.FollowUser)
	e.GET("/follow/user/:uid/following", f.FindAllFollowing)
	e.GET("/follow/user/:uid/followed", f.FindAllFollowed)
	e.PUT("/follow/:fid", f.UpdateFollow)
	e.DELETE("/follow/:fid", f.UnfollowUser)
	e.DELETE("/follow/user/:uid/removeallfollower", f.RemoveAllFollowers)
}

// RegisterBookmarks registers the /bookmark routes.
func RegisterBookmarks(e *echo.Echo, b *handler.BookmarkHandler) {
	e.POST("/bookmark", b.CreateBookmark)
	e.GET("/bookmark/user/:uid", b.FindBookmarkTuitsByUser)
	e.PUT("/bookmark/:bid", b.UpdateBookmark)
	e.DELETE("/bookmark/:bid", b.Unbookmark)
	e.DELETE("/bookmark/user/:uid/unbookmarkall", b.UnbookmarkAllByUser)
}

// RegisterMessages registers the /message routes.  The conversation between
// two users is served at /message/user/:uid/with/:ouid.
func RegisterMessages(e *echo.Echo, m *handler.MessageHandler) {
	e.POST("/message", m.CreateMessage)
	e.GET("/message/user/:uid/sent", m.FindSentMessages)
	e.GET("/message/user/:uid/received", m.FindReceivedMessages)
	e.GET("/message/user/:uid/with/:ouid", m.FindMessagesBetweenUsers)
	e.PUT("/message/:mid", m.UpdateMessage)
	e.DELETE("/message/:mid", m.DeleteMessage)
}
