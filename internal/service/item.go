package service

import (
	"github.com/deppfellow/wtwr-backend/internal/middleware"
	"github.com/deppfellow/wtwr-backend/internal/model"
	"github.com/deppfellow/wtwr-backend/internal/repository"
	"github.com/deppfellow/wtwr-backend/internal/server"
	"github.com/labstack/echo/v4"
)

type ItemService struct {
	server   *server.Server
	itemRepo repository.ItemRepository
}

func NewItemService(s *server.Server, itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{
		server:   s,
		itemRepo: itemRepo,
	}
}

// CreateItem stores a new item owned by callerID.
func (s *ItemService) CreateItem(ctx echo.Context, callerID string, payload *model.CreateItemPayload) (*model.ClothingItem, error) {
	logger := middleware.GetLogger(ctx)

	item, err := s.itemRepo.CreateItem(ctx.Request().Context(), &model.ClothingItem{
		Name:     payload.Name,
		Weather:  payload.Weather,
		ImageURL: payload.ImageURL,
		Owner:    callerID,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create clothing item")
		return nil, err
	}

	logger.Info().
		Str("event", "item_created").
		Str("item_id", item.ID).
		Str("weather", string(item.Weather)).
		Msg("clothing item created")

	return item, nil
}

func (s *ItemService) GetItems(ctx echo.Context) ([]model.ClothingItem, error) {
	items, err := s.itemRepo.GetItems(ctx.Request().Context())
	if err != nil {
		middleware.GetLogger(ctx).Error().Err(err).Msg("failed to list clothing items")
		return nil, err
	}

	return items, nil
}

func (s *ItemService) DeleteItem(ctx echo.Context, itemID string) (*model.ClothingItem, error) {
	logger := middleware.GetLogger(ctx)

	item, err := s.itemRepo.DeleteItem(ctx.Request().Context(), itemID)
	if err != nil {
		logger.Warn().Err(err).Str("item_id", itemID).Msg("failed to delete clothing item")
		return nil, err
	}

	logger.Info().
		Str("event", "item_deleted").
		Str("item_id", item.ID).
		Str("owner", item.Owner).
		Msg("clothing item deleted")

	return item, nil
}

// LikeItem adds callerID to the item's likes. Liking twice keeps a single entry.
func (s *ItemService) LikeItem(ctx echo.Context, itemID, callerID string) (*model.ClothingItem, error) {
	item, err := s.itemRepo.AddLike(ctx.Request().Context(), itemID, callerID)
	if err != nil {
		middleware.GetLogger(ctx).Warn().Err(err).Str("item_id", itemID).Msg("failed to like clothing item")
		return nil, err
	}

	middleware.GetLogger(ctx).Debug().
		Str("item_id", item.ID).
		Int("likes", len(item.Likes)).
		Msg("clothing item liked")

	return item, nil
}

// UnlikeItem removes callerID from the item's likes if present.
func (s *ItemService) UnlikeItem(ctx echo.Context, itemID, callerID string) (*model.ClothingItem, error) {
	item, err := s.itemRepo.RemoveLike(ctx.Request().Context(), itemID, callerID)
	if err != nil {
		middleware.GetLogger(ctx).Warn().Err(err).Str("item_id", itemID).Msg("failed to unlike clothing item")
		return nil, err
	}

	middleware.GetLogger(ctx).Debug().
		Str("item_id", item.ID).
		Int("likes", len(item.Likes)).
		Msg("clothing item unliked")

	return item, nil
}
