package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/domain"
)

// diagramServiceStub is a happy-path in-memory diagram service.
type diagramServiceStub struct {
	diagrams []*domain.Diagram
}

func (s *diagramServiceStub) ListDiagrams(ctx context.Context) []*domain.Diagram {
	return s.diagrams
}

func (s *diagramServiceStub) GetDiagram(ctx context.Context, diagramID uuid.UUID) *domain.Diagram {
	for _, d := range s.diagrams {
		if d.ID == diagramID {
			return d
		}
	}
	return nil
}

func (s *diagramServiceStub) CreateDiagram(ctx context.Context, title, imageURL string) *domain.Diagram {
	d := &domain.Diagram{ID: uuid.New(), Title: title, ImageURL: imageURL, Labels: []domain.Label{}}
	s.diagrams = append(s.diagrams, d)
	return d
}

func (s *diagramServiceStub) UpdateDiagram(ctx context.Context, diagramID uuid.UUID, title, imageURL string) *domain.Diagram {
	d := s.GetDiagram(ctx, diagramID)
	if d == nil {
		return nil
	}
	d.Title = title
	d.ImageURL = imageURL
	return d
}

func (s *diagramServiceStub) DeleteDiagram(ctx context.Context, diagramID uuid.UUID) bool {
	for i, d := range s.diagrams {
		if d.ID == diagramID {
			s.diagrams = append(s.diagrams[:i], s.diagrams[i+1:]...)
			return true
		}
	}
	return false
}

func (s *diagramServiceStub) CreateLabel(ctx context.Context, diagramID uuid.UUID, number int, x, y float64, answer string) *domain.Label {
	d := s.GetDiagram(ctx, diagramID)
	if d == nil {
		return nil
	}
	l := domain.Label{ID: uuid.New(), DiagramID: diagramID, Number: number, X: x, Y: y, Answer: answer}
	d.Labels = append(d.Labels, l)
	return &l
}

func (s *diagramServiceStub) UpdateLabel(ctx context.Context, labelID uuid.UUID, number int, x, y float64, answer string) *domain.Label {
	for _, d := range s.diagrams {
		for i, l := range d.Labels {
			if l.ID == labelID {
				d.Labels[i].Number = number
				d.Labels[i].X = x
				d.Labels[i].Y = y
				d.Labels[i].Answer = answer
				return &d.Labels[i]
			}
		}
	}
	return nil
}

func (s *diagramServiceStub) DeleteLabel(ctx context.Context, labelID uuid.UUID) bool {
	for _, d := range s.diagrams {
		for i, l := range d.Labels {
			if l.ID == labelID {
				d.Labels = append(d.Labels[:i], d.Labels[i+1:]...)
				return true
			}
		}
	}
	return false
}

func TestDiagrams_CreateAndGet(t *testing.T) {
	svc := &diagramServiceStub{}
	h := NewDiagramsHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/diagrams",
		strings.NewReader(`{"title":"Heart anatomy","imageUrl":"https://img.example.com/heart.png"}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var created diagramResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if created.Title != "Heart anatomy" {
		t.Errorf("title = %q", created.Title)
	}
	if created.Labels == nil {
		t.Error("labels should serialize as empty array, not null")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/diagrams/"+created.ID, nil)
	getReq.SetPathValue("id", created.ID)
	getRec := httptest.NewRecorder()

	h.Get(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, getRec.Code)
	}
}

func TestDiagrams_Get_NotFound(t *testing.T) {
	h := NewDiagramsHandler(&diagramServiceStub{}, slog.Default())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/diagrams/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestDiagrams_CreateLabel(t *testing.T) {
	svc := &diagramServiceStub{}
	h := NewDiagramsHandler(svc, slog.Default())
	d := svc.CreateDiagram(context.Background(), "Cell", "https://img.example.com/cell.png")

	req := httptest.NewRequest(http.MethodPost, "/api/diagrams/"+d.ID.String()+"/labels",
		strings.NewReader(`{"number":1,"x":0.25,"y":0.75,"answer":"nucleus"}`))
	req.SetPathValue("id", d.ID.String())
	rec := httptest.NewRecorder()

	h.CreateLabel(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp labelResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Answer != "nucleus" {
		t.Errorf("answer = %q, want nucleus", resp.Answer)
	}
	if resp.X != 0.25 || resp.Y != 0.75 {
		t.Errorf("position = (%v, %v), want (0.25, 0.75)", resp.X, resp.Y)
	}
}

func TestDiagrams_DeleteLabel_Failure(t *testing.T) {
	h := NewDiagramsHandler(&diagramServiceStub{}, slog.Default())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/api/labels/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.DeleteLabel(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}
