package diagram

import (
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

// diagramRow mirrors the diagrams table (image_url <-> ImageURL).
type diagramRow struct {
	ID        uuid.UUID
	Title     string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r diagramRow) toDomain() domain.Diagram {
	return domain.Diagram{
		ID:        r.ID,
		Title:     r.Title,
		ImageURL:  r.ImageURL,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// labelRow mirrors the diagram_labels table.
//
//	label_number <-> Number
//	pos_x, pos_y <-> X, Y (normalized coordinates)
type labelRow struct {
	ID          uuid.UUID
	DiagramID   uuid.UUID
	LabelNumber int
	PosX        float64
	PosY        float64
	Answer      string
	CreatedAt   time.Time
}

func (r labelRow) toDomain() domain.Label {
	return domain.Label{
		ID:        r.ID,
		DiagramID: r.DiagramID,
		Number:    r.LabelNumber,
		X:         r.PosX,
		Y:         r.PosY,
		Answer:    r.Answer,
		CreatedAt: r.CreatedAt,
	}
}

func labelRowFromDomain(l domain.Label) labelRow {
	return labelRow{
		ID:          l.ID,
		DiagramID:   l.DiagramID,
		LabelNumber: l.Number,
		PosX:        l.X,
		PosY:        l.Y,
		Answer:      l.Answer,
		CreatedAt:   l.CreatedAt,
	}
}
