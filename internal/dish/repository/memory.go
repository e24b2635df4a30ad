package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/menuhub/dish-service/internal/dish"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps dishes in process memory. Used by the standalone service when no
// database is configured and by unit tests. Native ids are real ObjectIDs so lookups
// behave the same as against Mongo.
type MemoryRepo struct {
	mu      sync.RWMutex
	store   map[primitive.ObjectID]*dish.Dish
	bySeq   map[int64]*dish.Dish
	lastSeq int64
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		store: make(map[primitive.ObjectID]*dish.Dish),
		bySeq: make(map[int64]*dish.Dish),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryRepo) Insert(_ context.Context, dishes []*dish.Dish) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for _, d := range dishes {
		m.lastSeq++
		d.SequentialID = m.lastSeq
		d.NativeID = primitive.NewObjectIDFromTimestamp(now)
		d.CreatedAt = now
		d.UpdatedAt = now
		cp := *d
		m.store[cp.NativeID] = &cp
		m.bySeq[cp.SequentialID] = &cp
	}
	return nil
}

func (m *MemoryRepo) GetByNativeID(_ context.Context, id primitive.ObjectID) (*dish.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) GetBySequentialID(_ context.Context, id int64) (*dish.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.bySeq[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, ErrNotFound
}

// List orders like the Mongo sort {sequentialId: 1, _id: 1}: records without a
// sequential id come first.
func (m *MemoryRepo) List(_ context.Context) ([]*dish.Dish, error) {
	m.mu.RLock()
	out := make([]*dish.Dish, 0, len(m.store))
	for _, d := range m.store {
		cp := *d
		out = append(out, &cp)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].SequentialID != out[j].SequentialID {
			return out[i].SequentialID < out[j].SequentialID
		}
		return out[i].NativeID.Hex() < out[j].NativeID.Hex()
	})
	return out, nil
}
