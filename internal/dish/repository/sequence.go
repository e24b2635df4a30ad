package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dishCounterID = "dishes"

// MongoSequence hands out sequential ids from a single counter document
// {_id: <name>, seq: <last issued>}. Reservation is one $inc, so it is atomic across
// processes sharing the database.
type MongoSequence struct {
	col  *mongo.Collection
	name string
}

func NewMongoSequence(col *mongo.Collection, name string) *MongoSequence {
	if name == "" {
		name = dishCounterID
	}
	return &MongoSequence{col: col, name: name}
}

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// Next reserves n ids and returns the first. The reserved block is first..first+n-1.
func (s *MongoSequence) Next(ctx context.Context, n int) (int64, error) {
	if n < 1 {
		return 0, fmt.Errorf("reserve %d ids: count must be positive", n)
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc counterDoc
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": s.name}, bson.M{"$inc": bson.M{"seq": int64(n)}}, opts).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("reserve %d ids: %w", n, err)
	}
	return doc.Seq - int64(n) + 1, nil
}

// Sync raises the counter to at least floor. $max keeps it monotonic even when several
// instances start at once.
func (s *MongoSequence) Sync(ctx context.Context, floor int64) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": s.name},
		bson.M{"$max": bson.M{"seq": floor}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("sync counter %q: %w", s.name, err)
	}
	return nil
}

// Current returns the last issued id, 0 when nothing has been issued.
func (s *MongoSequence) Current(ctx context.Context) (int64, error) {
	var doc counterDoc
	err := s.col.FindOne(ctx, bson.M{"_id": s.name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}
