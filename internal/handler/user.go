package handler

import (
	"github.com/deppfellow/wtwr-backend/internal/model"
	"github.com/deppfellow/wtwr-backend/internal/server"
	"github.com/deppfellow/wtwr-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler answers with bare user records, without the {data: ...}
// envelope item mutations use.
type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) CreateUser(c echo.Context, payload *model.CreateUserPayload) (*model.User, error) {
	return h.userService.CreateUser(c, payload)
}

func (h *UserHandler) GetUsers(c echo.Context, _ *model.GetUsersPayload) ([]model.User, error) {
	return h.userService.GetUsers(c)
}

func (h *UserHandler) GetUser(c echo.Context, payload *model.UserIDPayload) (*model.User, error) {
	return h.userService.GetUser(c, payload.UserID)
}
