package service

import (
	"github.com/deppfellow/wtwr-backend/internal/middleware"
	"github.com/deppfellow/wtwr-backend/internal/model"
	"github.com/deppfellow/wtwr-backend/internal/repository"
	"github.com/deppfellow/wtwr-backend/internal/server"
	"github.com/labstack/echo/v4"
)

type UserService struct {
	server   *server.Server
	userRepo repository.UserRepository
}

func NewUserService(s *server.Server, userRepo repository.UserRepository) *UserService {
	return &UserService{
		server:   s,
		userRepo: userRepo,
	}
}

func (s *UserService) CreateUser(ctx echo.Context, payload *model.CreateUserPayload) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.CreateUser(ctx.Request().Context(), &model.User{
		Name:   payload.Name,
		Avatar: payload.Avatar,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	logger.Info().
		Str("event", "user_created").
		Str("created_user_id", user.ID).
		Msg("user created")

	return user, nil
}

func (s *UserService) GetUsers(ctx echo.Context) ([]model.User, error) {
	users, err := s.userRepo.GetUsers(ctx.Request().Context())
	if err != nil {
		middleware.GetLogger(ctx).Error().Err(err).Msg("failed to list users")
		return nil, err
	}

	return users, nil
}

func (s *UserService) GetUser(ctx echo.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx.Request().Context(), userID)
	if err != nil {
		middleware.GetLogger(ctx).Warn().Err(err).Str("requested_user_id", userID).Msg("failed to get user")
		return nil, err
	}

	return user, nil
}
