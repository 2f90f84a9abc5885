package handler

import (
	"github.com/deppfellow/wtwr-backend/internal/middleware"
	"github.com/deppfellow/wtwr-backend/internal/model"
	"github.com/deppfellow/wtwr-backend/internal/server"
	"github.com/deppfellow/wtwr-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	Handler
	itemService *service.ItemService
}

func NewItemHandler(s *server.Server, itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{
		Handler:     NewHandler(s),
		itemService: itemService,
	}
}

// CreateItem answers 201 {data: item}; the owner is the caller.
func (h *ItemHandler) CreateItem(c echo.Context, payload *model.CreateItemPayload) (*model.ItemResponse, error) {
	item, err := h.itemService.CreateItem(c, middleware.GetUserID(c), payload)
	if err != nil {
		return nil, err
	}
	return &model.ItemResponse{Data: item}, nil
}

// GetItems answers with a bare array, [] when the catalog is empty.
func (h *ItemHandler) GetItems(c echo.Context, _ *model.GetItemsPayload) ([]model.ClothingItem, error) {
	return h.itemService.GetItems(c)
}

func (h *ItemHandler) DeleteItem(c echo.Context, payload *model.ItemIDPayload) (*model.ItemResponse, error) {
	item, err := h.itemService.DeleteItem(c, payload.ItemID)
	if err != nil {
		return nil, err
	}
	return &model.ItemResponse{Data: item}, nil
}

func (h *ItemHandler) LikeItem(c echo.Context, payload *model.ItemIDPayload) (*model.ItemResponse, error) {
	item, err := h.itemService.LikeItem(c, payload.ItemID, middleware.GetUserID(c))
	if err != nil {
		return nil, err
	}
	return &model.ItemResponse{Data: item}, nil
}

func (h *ItemHandler) UnlikeItem(c echo.Context, payload *model.ItemIDPayload) (*model.ItemResponse, error) {
	item, err := h.itemService.UnlikeItem(c, payload.ItemID, middleware.GetUserID(c))
	if err != nil {
		return nil, err
	}
	return &model.ItemResponse{Data: item}, nil
}
