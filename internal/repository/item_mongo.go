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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type itemDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Weather   string             `bson:"weather"`
	ImageURL  string             `bson:"imageUrl"`
	Owner     string             `bson:"owner"`
	Likes     []string           `bson:"likes"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *itemDocument) toModel() *model.ClothingItem {
	return &model.ClothingItem{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Weather:   model.Weather(d.Weather),
		ImageURL:  d.ImageURL,
		Owner:     d.Owner,
		Likes:     normalizeLikes(d.Likes),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// MongoItemRepository stores items in the clothingitems collection.
type MongoItemRepository struct {
	coll *mongo.Collection
}

func NewMongoItemRepository(db *mongo.Database) *MongoItemRepository {
	return &MongoItemRepository{coll: db.Collection(database.ItemsCollection)}
}

func (r *MongoItemRepository) CreateItem(ctx context.Context, item *model.ClothingItem) (*model.ClothingItem, error) {
	doc := itemDocument{
		ID:        primitive.NewObjectID(),
		Name:      item.Name,
		Weather:   string(item.Weather),
		ImageURL:  item.ImageURL,
		Owner:     item.Owner,
		Likes:     []string{},
		CreatedAt: model.Now(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, dberr.FromMongo(itemEntity, "", err)
	}

	return doc.toModel(), nil
}

func (r *MongoItemRepository) GetItems(ctx context.Context) ([]model.ClothingItem, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, dberr.FromMongo(itemEntity, "", err)
	}
	defer cur.Close(ctx)

	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, dberr.FromMongo(itemEntity, "", err)
	}

	items := make([]model.ClothingItem, 0, len(docs))
	for i := range docs {
		items = append(items, *docs[i].toModel())
	}
	return items, nil
}

func (r *MongoItemRepository) DeleteItem(ctx context.Context, itemID string) (*model.ClothingItem, error) {
	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, dberr.NewInvalidID(itemEntity, itemID)
	}

	var doc itemDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, dberr.FromMongo(itemEntity, itemID, err)
	}

	return doc.toModel(), nil
}

func (r *MongoItemRepository) AddLike(ctx context.Context, itemID, userID string) (*model.ClothingItem, error) {
	return r.updateLikes(ctx, itemID, bson.M{"$addToSet": bson.M{"likes": userID}})
}

func (r *MongoItemRepository) RemoveLike(ctx context.Context, itemID, userID string) (*model.ClothingItem, error) {
	return r.updateLikes(ctx, itemID, bson.M{"$pull": bson.M{"likes": userID}})
}

// updateLikes applies update and returns the document after it.
// $addToSet and $pull give the set semantics in a single round trip.
func (r *MongoItemRepository) updateLikes(ctx context.Context, itemID string, update bson.M) (*model.ClothingItem, error) {
	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, dberr.NewInvalidID(itemEntity, itemID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc itemDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, dberr.FromMongo(itemEntity, itemID, err)
	}

	return doc.toModel(), nil
}
