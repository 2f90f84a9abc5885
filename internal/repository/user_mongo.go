package repository

import (
	"context"
	"time"

	"github.com/deppfellow/wtwr-backend/internal/database"
	"github.com/deppfellow/wtwr-backend/internal/dberr"
	"github.com/deppfellow/wtwr-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Avatar    string             `bson:"avatar"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Avatar:    d.Avatar,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// MongoUserRepository stores users in the users collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(database.UsersCollection)}
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: model.Now(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, dberr.FromMongo(userEntity, "", err)
	}

	return doc.toModel(), nil
}

func (r *MongoUserRepository) GetUsers(ctx context.Context) ([]model.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, dberr.FromMongo(userEntity, "", err)
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, dberr.FromMongo(userEntity, "", err)
	}

	users := make([]model.User, 0, len(docs))
	for i := range docs {
		users = append(users, *docs[i].toModel())
	}
	return users, nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, dberr.NewInvalidID(userEntity, userID)
	}

	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, dberr.FromMongo(userEntity, userID, err)
	}

	return doc.toModel(), nil
}
