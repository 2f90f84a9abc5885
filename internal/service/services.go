package service

import (
	"github.com/deppfellow/wtwr-backend/internal/repository"
	"github.com/deppfellow/wtwr-backend/internal/server"
)

type Services struct {
	Auth  *AuthService
	Items *ItemService
	Users *UserService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Auth:  NewAuthService(s),
		Items: NewItemService(s, repos.Items),
		Users: NewUserService(s, repos.Users),
	}
}
