package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/menuhub/dish-service/internal/dish"
	"github.com/menuhub/dish-service/internal/dish/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrStorage             = errors.New("storage failure")
)

// Service is the dish business layer used by the HTTP handlers.
type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() (*Service, *repository.MemoryRepo) {
	repo := repository.NewMemoryRepo()
	return New(repo), repo
}

// NewMongoService returns a Service backed by the given collections. Init must have
// succeeded on the returned repo before the service takes writes.
func NewMongoService(dishes, counters *mongo.Collection) (*Service, *repository.MongoRepo) {
	repo := repository.NewMongoRepo(dishes, counters)
	return New(repo), repo
}

func (s *Service) List(ctx context.Context) ([]*dish.Dish, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list dishes: %w", ErrStorage, err)
	}
	return list, nil
}

// Get resolves raw as either a native or a sequential identifier.
func (s *Service) Get(ctx context.Context, raw string) (*dish.Dish, error) {
	id := dish.ParseIdentifier(raw)
	var (
		d   *dish.Dish
		err error
	)
	switch id.Kind {
	case dish.NativeID:
		d, err = s.repo.GetByNativeID(ctx, id.Native)
	case dish.SequentialID:
		d, err = s.repo.GetBySequentialID(ctx, id.Sequential)
	default:
		return nil, fmt.Errorf("%w: %q", ErrMalformedIdentifier, raw)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: dish %s", ErrNotFound, id.Raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get dish %s: %w", ErrStorage, id.Raw, err)
	}
	return d, nil
}

// Create validates c and persists it with the next sequential id.
func (s *Service) Create(ctx context.Context, c dish.Candidate) (*dish.Dish, error) {
	d, err := c.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := s.repo.Insert(ctx, []*dish.Dish{d}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return d, nil
}

// CreateMany drops invalid candidates and persists the rest in one insert, in input
// order, with consecutive sequential ids. It fails only when nothing survives.
func (s *Service) CreateMany(ctx context.Context, cs []dish.Candidate) ([]*dish.Dish, error) {
	valid := make([]*dish.Dish, 0, len(cs))
	for _, c := range cs {
		d, err := c.Validate()
		if err != nil {
			continue
		}
		valid = append(valid, d)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no valid dishes in batch of %d", ErrValidation, len(cs))
	}
	if err := s.repo.Insert(ctx, valid); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return valid, nil
}

// Seed inserts the candidates that validate; used to load the sample menu.
func (s *Service) Seed(ctx context.Context, cs []dish.Candidate) (int, error) {
	created, err := s.CreateMany(ctx, cs)
	if err != nil {
		return 0, err
	}
	return len(created), nil
}
