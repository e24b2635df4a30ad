package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/menuhub/dish-service/internal/dish"
	"github.com/menuhub/dish-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements a MongoDB-backed repository for dishes.
// Sequential ids come from a MongoSequence in a separate counters collection.
type MongoRepo struct {
	col *mongo.Collection
	seq *MongoSequence
}

func NewMongoRepo(col *mongo.Collection, counters *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col, seq: NewMongoSequence(counters, dishCounterID)}
}

// Init creates the sequentialId index and aligns the counter with any existing data.
// Call once at startup before serving.
func (m *MongoRepo) Init(ctx context.Context) error {
	// sparse: legacy records without a sequentialId must not collide on null
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "sequentialId", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}
	if _, err := m.col.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("create sequentialId index: %w", err)
	}
	highest, err := m.maxSequentialID(ctx)
	if err != nil {
		return err
	}
	if err := m.seq.Sync(ctx, highest); err != nil {
		return err
	}
	cur, err := m.seq.Current(ctx)
	if err != nil {
		return fmt.Errorf("read dish counter: %w", err)
	}
	logger.Infof("dish counter at %d (highest stored sequentialId %d)", cur, highest)
	return nil
}

func (m *MongoRepo) maxSequentialID(ctx context.Context) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "sequentialId", Value: -1}}).
		SetProjection(bson.M{"sequentialId": 1})
	var d dish.Dish
	err := m.col.FindOne(ctx, bson.M{"sequentialId": bson.M{"$exists": true}}, opts).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find max sequentialId: %w", err)
	}
	return d.SequentialID, nil
}

func (m *MongoRepo) Insert(ctx context.Context, dishes []*dish.Dish) error {
	if len(dishes) == 0 {
		return nil
	}
	first, err := m.seq.Next(ctx, len(dishes))
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]interface{}, 0, len(dishes))
	ids := make([]primitive.ObjectID, 0, len(dishes))
	for i, d := range dishes {
		d.NativeID = primitive.NewObjectID()
		d.SequentialID = first + int64(i)
		d.CreatedAt = now
		d.UpdatedAt = now
		docs = append(docs, d)
		ids = append(ids, d.NativeID)
	}
	if _, err := m.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		if len(ids) > 1 {
			// remove whatever part of the batch made it in
			if _, derr := m.col.DeleteMany(context.Background(), bson.M{"_id": bson.M{"$in": ids}}); derr != nil {
				logger.Errorw("rollback of partial dish batch failed", "count", len(ids), "err", derr)
			}
		}
		return fmt.Errorf("insert %d dishes: %w", len(dishes), err)
	}
	return nil
}

func (m *MongoRepo) GetByNativeID(ctx context.Context, id primitive.ObjectID) (*dish.Dish, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *MongoRepo) GetBySequentialID(ctx context.Context, id int64) (*dish.Dish, error) {
	return m.findOne(ctx, bson.M{"sequentialId": id})
}

func (m *MongoRepo) findOne(ctx context.Context, filter bson.M) (*dish.Dish, error) {
	var d dish.Dish
	err := m.col.FindOne(ctx, filter).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*dish.Dish, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sequentialId", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*dish.Dish{}
	for cur.Next(ctx) {
		var d dish.Dish
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
