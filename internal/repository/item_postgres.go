package repository

import (
	"context"

	"github.com/deppfellow/wtwr-backend/internal/dberr"
	"github.com/deppfellow/wtwr-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `id, name, weather, image_url, owner, likes, created_at`

// PostgresItemRepository stores items in the clothing_items table, with
// likes kept as a TEXT[] set.
type PostgresItemRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresItemRepository(pool *pgxpool.Pool) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool}
}

func (r *PostgresItemRepository) queryOne(ctx context.Context, itemID, sql string, args ...any) (*model.ClothingItem, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberr.FromPostgres(itemEntity, itemID, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.ClothingItem])
	if err != nil {
		return nil, dberr.FromPostgres(itemEntity, itemID, err)
	}

	item.Likes = normalizeLikes(item.Likes)
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}

func (r *PostgresItemRepository) CreateItem(ctx context.Context, item *model.ClothingItem) (*model.ClothingItem, error) {
	sql := `
		INSERT INTO clothing_items (id, name, weather, image_url, owner, likes, created_at)
		VALUES (@id, @name, @weather, @image_url, @owner, '{}', @created_at)
		RETURNING ` + itemColumns

	return r.queryOne(ctx, "", sql, pgx.NamedArgs{
		"id":         model.NewID(),
		"name":       item.Name,
		"weather":    string(item.Weather),
		"image_url":  item.ImageURL,
		"owner":      item.Owner,
		"created_at": model.Now(),
	})
}

func (r *PostgresItemRepository) GetItems(ctx context.Context) ([]model.ClothingItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM clothing_items ORDER BY id`)
	if err != nil {
		return nil, dberr.FromPostgres(itemEntity, "", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ClothingItem])
	if err != nil {
		return nil, dberr.FromPostgres(itemEntity, "", err)
	}

	if items == nil {
		items = []model.ClothingItem{}
	}
	for i := range items {
		items[i].Likes = normalizeLikes(items[i].Likes)
		items[i].CreatedAt = items[i].CreatedAt.UTC()
	}
	return items, nil
}

func (r *PostgresItemRepository) DeleteItem(ctx context.Context, itemID string) (*model.ClothingItem, error) {
	itemID, ok := model.ParseID(itemID)
	if !ok {
		return nil, dberr.NewInvalidID(itemEntity, itemID)
	}

	return r.queryOne(ctx, itemID,
		`DELETE FROM clothing_items WHERE id = $1 RETURNING `+itemColumns,
		itemID,
	)
}

func (r *PostgresItemRepository) AddLike(ctx context.Context, itemID, userID string) (*model.ClothingItem, error) {
	itemID, ok := model.ParseID(itemID)
	if !ok {
		return nil, dberr.NewInvalidID(itemEntity, itemID)
	}

	sql := `
		UPDATE clothing_items
		SET likes = CASE WHEN $2 = ANY(likes) THEN likes ELSE array_append(likes, $2) END
		WHERE id = $1
		RETURNING ` + itemColumns

	return r.queryOne(ctx, itemID, sql, itemID, userID)
}

func (r *PostgresItemRepository) RemoveLike(ctx context.Context, itemID, userID string) (*model.ClothingItem, error) {
	itemID, ok := model.ParseID(itemID)
	if !ok {
		return nil, dberr.NewInvalidID(itemEntity, itemID)
	}

	return r.queryOne(ctx, itemID,
		`UPDATE clothing_items SET likes = array_remove(likes, $2) WHERE id = $1 RETURNING `+itemColumns,
		itemID, userID,
	)
}
