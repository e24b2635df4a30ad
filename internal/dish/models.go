package dish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultImage is stored when a dish is created without an image.
const DefaultImage = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c"

// Dish is the persistent menu item. NativeID is the store's own key; SequentialID is the
// application-level integer handed out by the repository's counter. Legacy records may
// lack a SequentialID (zero).
type Dish struct {
	NativeID     primitive.ObjectID `json:"_id" bson:"_id"`
	SequentialID int64              `json:"id,omitempty" bson:"sequentialId,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Price        float64            `json:"price" bson:"price"`
	Description  string             `json:"description" bson:"description"`
	Image        string             `json:"image" bson:"image"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Candidate is a create payload as received on the wire. Every field is optional here;
// Validate decides whether it becomes a Dish.
type Candidate struct {
	Name        *string `json:"name"`
	Price       *Price  `json:"price"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// Price accepts a JSON number or a numeric string ("14.99"). null leaves it unset.
// Infinities and NaN are rejected; they cannot be written back out as JSON.
type Price float64

func finite(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !finite(f) {
			return fmt.Errorf("price %q is not a number", s)
		}
		*p = Price(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil || !finite(f) {
		return fmt.Errorf("price must be a number or numeric string")
	}
	*p = Price(f)
	return nil
}
