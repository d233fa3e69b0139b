package job

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/studybuddy/backend/internal/domain"
)

// jobRow mirrors the jobs table. Nullable columns use pgtype wrappers;
// the domain entity uses pointers.
//
//	position       <-> Position
//	company        <-> Company
//	location       <-> Location (nullable)
//	status         <-> Status
//	saved_date     <-> SavedDate      (nullable)
//	applied_date   <-> AppliedDate    (nullable)
//	screen_date    <-> ScreenDate     (nullable)
//	interview_date <-> InterviewDate  (nullable)
//	offer_date     <-> OfferDate      (nullable)
type jobRow struct {
	ID            uuid.UUID
	Position      string
	Company       string
	Location      pgtype.Text
	Status        string
	SavedDate     pgtype.Timestamptz
	AppliedDate   pgtype.Timestamptz
	ScreenDate    pgtype.Timestamptz
	InterviewDate pgtype.Timestamptz
	OfferDate     pgtype.Timestamptz
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// toDomain converts a stored row into a domain.Job.
func (r jobRow) toDomain() domain.Job {
	j := domain.Job{
		ID:        r.ID,
		Position:  r.Position,
		Company:   r.Company,
		Status:    domain.JobStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.Location.Valid {
		j.Location = &r.Location.String
	}

	j.SavedDate = pgTimeToPtr(r.SavedDate)
	j.AppliedDate = pgTimeToPtr(r.AppliedDate)
	j.ScreenDate = pgTimeToPtr(r.ScreenDate)
	j.InterviewDate = pgTimeToPtr(r.InterviewDate)
	j.OfferDate = pgTimeToPtr(r.OfferDate)

	return j
}

// rowFromDomain converts a domain.Job into its stored representation.
func rowFromDomain(j domain.Job) jobRow {
	return jobRow{
		ID:            j.ID,
		Position:      j.Position,
		Company:       j.Company,
		Location:      ptrStringToPgText(j.Location),
		Status:        j.Status.String(),
		SavedDate:     ptrTimeToPgTimestamptz(j.SavedDate),
		AppliedDate:   ptrTimeToPgTimestamptz(j.AppliedDate),
		ScreenDate:    ptrTimeToPgTimestamptz(j.ScreenDate),
		InterviewDate: ptrTimeToPgTimestamptz(j.InterviewDate),
		OfferDate:     ptrTimeToPgTimestamptz(j.OfferDate),
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// ptrTimeToPgTimestamptz converts a *time.Time to pgtype.Timestamptz (nil -> NULL).
func ptrTimeToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// pgTimeToPtr converts a pgtype.Timestamptz to *time.Time (NULL -> nil).
func pgTimeToPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
