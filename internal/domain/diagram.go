package domain

import (
	"time"

	"github.com/google/uuid"
)

// Diagram is a labeled study image. Labels are ordered by their number;
// uniqueness of the number is a display concern, not a data constraint.
type Diagram struct {
	ID        uuid.UUID
	Title     string
	ImageURL  string
	Labels    []Label
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Label is a numbered marker on a diagram. X and Y are normalized to
// [0, 1] relative to the image dimensions.
type Label struct {
	ID        uuid.UUID
	DiagramID uuid.UUID
	Number    int
	X         float64
	Y         float64
	Answer    string
	CreatedAt time.Time
}
