package handler

import (
	"github.com/deppfellow/wtwr-backend/internal/server"
	"github.com/deppfellow/wtwr-backend/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Items   *ItemHandler
	Users   *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Items:   NewItemHandler(s, services.Items),
		Users:   NewUserHandler(s, services.Users),
	}
}
