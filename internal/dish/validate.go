package dish

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingFields is returned by Validate when name or price is absent (a zero price
	// counts as absent).
	ErrMissingFields = errors.New("name and price are required")
	// ErrInvalidPrice is returned when both fields are present but the price is negative.
	ErrInvalidPrice = errors.New("price must be a positive number")
)

// newDish is the validated shape of a Candidate.
type newDish struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
	Description string
	Image       string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate normalizes c (trims text, applies defaults) and returns the Dish it describes.
// Identifiers and timestamps are left for the repository.
func (c Candidate) Validate() (*Dish, error) {
	nd := newDish{Image: DefaultImage}
	if c.Name != nil {
		nd.Name = strings.TrimSpace(*c.Name)
	}
	if c.Price != nil {
		nd.Price = float64(*c.Price)
	}
	if c.Description != nil {
		nd.Description = strings.TrimSpace(*c.Description)
	}
	if c.Image != nil && strings.TrimSpace(*c.Image) != "" {
		nd.Image = strings.TrimSpace(*c.Image)
	}
	if err := validate.Struct(nd); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return nil, ErrMissingFields
			}
		}
		return nil, ErrInvalidPrice
	}
	return &Dish{
		Name:        nd.Name,
		Price:       nd.Price,
		Description: nd.Description,
		Image:       nd.Image,
	}, nil
}
