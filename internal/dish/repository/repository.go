package repository

import (
	"context"
	"errors"

	"github.com/menuhub/dish-service/internal/dish"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("dish not found")
)

// Repository persists dishes. Insert owns sequential-id allocation: it reserves
// len(dishes) consecutive ids in a single atomic step, so concurrent inserts never
// share an id.
type Repository interface {
	List(ctx context.Context) ([]*dish.Dish, error)
	GetByNativeID(ctx context.Context, id primitive.ObjectID) (*dish.Dish, error)
	GetBySequentialID(ctx context.Context, id int64) (*dish.Dish, error)
	Insert(ctx context.Context, dishes []*dish.Dish) error
}
