// Package repository translates item and user operations into single
// document-store calls.
//
// Each backend (Mongo, Postgres, in-memory) implements the same two
// interfaces and reports failures as *dberr.Error, so callers never see
// driver-specific errors: a missing id is dberr.NotFound, a malformed id
// is dberr.InvalidID, anything else is dberr.Other.
package repository

import (
	"context"

	"github.com/deppfellow/wtwr-backend/internal/model"
)

// Entity names carried by the typed errors.
const (
	itemEntity = "item"
	userEntity = "user"
)

// ItemRepository persists clothing items.
type ItemRepository interface {
	// CreateItem assigns ID and CreatedAt, stores item with an empty like
	// set and returns the stored record.
	CreateItem(ctx context.Context, item *model.ClothingItem) (*model.ClothingItem, error)

	// GetItems returns every item in the store's natural order.
	GetItems(ctx context.Context) ([]model.ClothingItem, error)

	// DeleteItem removes the item and returns it as it was.
	DeleteItem(ctx context.Context, itemID string) (*model.ClothingItem, error)

	// AddLike puts userID into the item's like set. Adding twice is a no-op.
	AddLike(ctx context.Context, itemID, userID string) (*model.ClothingItem, error)

	// RemoveLike takes userID out of the like set. Removing an absent like
	// is a no-op.
	RemoveLike(ctx context.Context, itemID, userID string) (*model.ClothingItem, error)
}

// UserRepository persists users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
}

// normalizeLikes keeps JSON output as [] instead of null.
func normalizeLikes(likes []string) []string {
	if likes == nil {
		return []string{}
	}
	return likes
}
