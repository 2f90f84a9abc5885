package repository

import (
	"context"

	"github.com/deppfellow/wtwr-backend/internal/dberr"
	"github.com/deppfellow/wtwr-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, avatar, created_at`

type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO users (id, name, avatar, created_at)
		VALUES (@id, @name, @avatar, @created_at)
		RETURNING `+userColumns,
		pgx.NamedArgs{
			"id":         model.NewID(),
			"name":       user.Name,
			"avatar":     user.Avatar,
			"created_at": model.Now(),
		},
	)
	if err != nil {
		return nil, dberr.FromPostgres(userEntity, "", err)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, dberr.FromPostgres(userEntity, "", err)
	}

	created.CreatedAt = created.CreatedAt.UTC()
	return created, nil
}

func (r *PostgresUserRepository) GetUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, dberr.FromPostgres(userEntity, "", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, dberr.FromPostgres(userEntity, "", err)
	}

	if users == nil {
		users = []model.User{}
	}
	for i := range users {
		users[i].CreatedAt = users[i].CreatedAt.UTC()
	}
	return users, nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	userID, ok := model.ParseID(userID)
	if !ok {
		return nil, dberr.NewInvalidID(userEntity, userID)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, dberr.FromPostgres(userEntity, userID, err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, dberr.FromPostgres(userEntity, userID, err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}
