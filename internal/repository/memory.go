package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/deppfellow/wtwr-backend/internal/dberr"
	"github.com/deppfellow/wtwr-backend/internal/model"
)

// NewMemoryRepositories returns process-local adapters for the memory
// driver. They keep insertion order and enforce the same id and like-set
// rules as the real stores.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Items: NewMemoryItemRepository(),
		Users: NewMemoryUserRepository(),
	}
}

type MemoryItemRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]*model.ClothingItem
}

func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{items: make(map[string]*model.ClothingItem)}
}

func cloneItem(item *model.ClothingItem) *model.ClothingItem {
	c := *item
	c.Likes = append([]string{}, item.Likes...)
	return &c
}

func (r *MemoryItemRepository) CreateItem(_ context.Context, item *model.ClothingItem) (*model.ClothingItem, error) {
	stored := &model.ClothingItem{
		ID:        model.NewID(),
		Name:      item.Name,
		Weather:   item.Weather,
		ImageURL:  item.ImageURL,
		Owner:     item.Owner,
		Likes:     []string{},
		CreatedAt: model.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	return cloneItem(stored), nil
}

func (r *MemoryItemRepository) GetItems(_ context.Context) ([]model.ClothingItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.ClothingItem, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, *cloneItem(r.items[id]))
	}
	return items, nil
}

// lookup must be called with r.mu held.
func (r *MemoryItemRepository) lookup(itemID string) (*model.ClothingItem, error) {
	id, ok := model.ParseID(itemID)
	if !ok {
		return nil, dberr.NewInvalidID(itemEntity, itemID)
	}

	item, ok := r.items[id]
	if !ok {
		return nil, dberr.NewNotFound(itemEntity, itemID)
	}
	return item, nil
}

func (r *MemoryItemRepository) DeleteItem(_ context.Context, itemID string) (*model.ClothingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, err := r.lookup(itemID)
	if err != nil {
		return nil, err
	}

	delete(r.items, item.ID)
	r.order = slices.DeleteFunc(r.order, func(id string) bool { return id == item.ID })

	return item, nil
}

func (r *MemoryItemRepository) AddLike(_ context.Context, itemID, userID string) (*model.ClothingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, err := r.lookup(itemID)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(item.Likes, userID) {
		item.Likes = append(item.Likes, userID)
	}

	return cloneItem(item), nil
}

func (r *MemoryItemRepository) RemoveLike(_ context.Context, itemID, userID string) (*model.ClothingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, err := r.lookup(itemID)
	if err != nil {
		return nil, err
	}

	item.Likes = slices.DeleteFunc(item.Likes, func(id string) bool { return id == userID })

	return cloneItem(item), nil
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	stored := model.User{
		ID:        model.NewID(),
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: model.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	return &stored, nil
}

func (r *MemoryUserRepository) GetUsers(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.users[id])
	}
	return users, nil
}

func (r *MemoryUserRepository) GetUserByID(_ context.Context, userID string) (*model.User, error) {
	id, ok := model.ParseID(userID)
	if !ok {
		return nil, dberr.NewInvalidID(userEntity, userID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, dberr.NewNotFound(userEntity, userID)
	}
	return &user, nil
}
