// Package router builds the echo instance: global middleware, the
// error handler and every route group.
package router

import (
	"net/http"

	"github.com/deppfellow/wtwr-backend/internal/handler"
	"github.com/deppfellow/wtwr-backend/internal/middleware"
	"github.com/deppfellow/wtwr-backend/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// BodyLimit caps request bodies; payloads are a handful of short strings.
const BodyLimit = "1M"

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(echoMiddleware.RemoveTrailingSlash())

	// Order matters: the request id and the New Relic transaction must
	// exist before the context logger is built, and the context logger
	// before anything that logs.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		echoMiddleware.BodyLimit(BodyLimit),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	registerItemRoutes(router, h, middlewares.Auth)
	registerUserRoutes(router, h)

	return router
}

// registerItemRoutes mounts /clothing-items. Listing is public; every
// mutation needs a resolved caller.
func registerItemRoutes(r *echo.Echo, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	items := r.Group("/clothing-items")

	items.GET("", handler.Handle(h.Items.GetItems, http.StatusOK))
	items.POST("", handler.Handle(h.Items.CreateItem, http.StatusCreated), auth.RequireAuth)
	items.DELETE("/:itemId", handler.Handle(h.Items.DeleteItem, http.StatusOK), auth.RequireAuth)
	items.PUT("/:itemId/likes", handler.Handle(h.Items.LikeItem, http.StatusOK), auth.RequireAuth)
	items.DELETE("/:itemId/likes", handler.Handle(h.Items.UnlikeItem, http.StatusOK), auth.RequireAuth)
}

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")

	users.GET("", handler.Handle(h.Users.GetUsers, http.StatusOK))
	users.POST("", handler.Handle(h.Users.CreateUser, http.StatusCreated))
	users.GET("/:userId", handler.Handle(h.Users.GetUser, http.StatusOK))
}
