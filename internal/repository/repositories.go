package repository

import (
	"github.com/deppfellow/wtwr-backend/internal/config"
	"github.com/deppfellow/wtwr-backend/internal/server"
)

// Repositories bundles the adapters for the configured driver.
type Repositories struct {
	Items ItemRepository
	Users UserRepository
}

// NewRepositories picks the backend matching the connection server.New
// opened.
func NewRepositories(s *server.Server) *Repositories {
	switch {
	case s.Config.Database.Driver == config.DriverMongo && s.Mongo != nil:
		return &Repositories{
			Items: NewMongoItemRepository(s.Mongo.DB),
			Users: NewMongoUserRepository(s.Mongo.DB),
		}

	case s.Config.Database.Driver == config.DriverPostgres && s.DB != nil:
		return &Repositories{
			Items: NewPostgresItemRepository(s.DB.Pool),
			Users: NewPostgresUserRepository(s.DB.Pool),
		}

	default:
		return NewMemoryRepositories()
	}
}
