package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the pipeline position of a tracked job application.
type JobStatus string

const (
	JobStatusSaved     JobStatus = "SAVED"
	JobStatusApplied   JobStatus = "APPLIED"
	JobStatusScreen    JobStatus = "SCREEN"
	JobStatusInterview JobStatus = "INTERVIEW"
	JobStatusOffer     JobStatus = "OFFER"

	// JobStatusRejected is terminal and sits outside the ordered
	// progression: it never appears in Stages and has no stage index.
	JobStatusRejected JobStatus = "REJECTED"
)

// Stages is the ordered application pipeline. Rejection is not a stage.
var Stages = [5]JobStatus{
	JobStatusSaved,
	JobStatusApplied,
	JobStatusScreen,
	JobStatusInterview,
	JobStatusOffer,
}

func (s JobStatus) String() string { return string(s) }

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusSaved, JobStatusApplied, JobStatusScreen,
		JobStatusInterview, JobStatusOffer, JobStatusRejected:
		return true
	}
	return false
}

// StageIndex returns the position of s in the ordered pipeline, or -1 for
// rejected and unknown statuses. Callers render stages at or before the
// index as completed, the index itself as current, and later stages as
// pending; with -1 every stage renders pending.
func StageIndex(s JobStatus) int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Job is one tracked job application.
type Job struct {
	ID       uuid.UUID
	Position string
	Company  string
	Location *string
	Status   JobStatus

	// Per-stage timestamps record when the application first reached a
	// stage. They are never cleared, even when the status regresses.
	SavedDate     *time.Time
	AppliedDate   *time.Time
	ScreenDate    *time.Time
	InterviewDate *time.Time
	OfferDate     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StageDate returns the timestamp recorded for the given stage, or nil.
func (j *Job) StageDate(s JobStatus) *time.Time {
	switch s {
	case JobStatusSaved:
		return j.SavedDate
	case JobStatusApplied:
		return j.AppliedDate
	case JobStatusScreen:
		return j.ScreenDate
	case JobStatusInterview:
		return j.InterviewDate
	case JobStatusOffer:
		return j.OfferDate
	}
	return nil
}

// SetStageDate records the timestamp for the given stage. Rejected has no
// stage date; setting it is a no-op.
func (j *Job) SetStageDate(s JobStatus, t time.Time) {
	switch s {
	case JobStatusSaved:
		j.SavedDate = &t
	case JobStatusApplied:
		j.AppliedDate = &t
	case JobStatusScreen:
		j.ScreenDate = &t
	case JobStatusInterview:
		j.InterviewDate = &t
	case JobStatusOffer:
		j.OfferDate = &t
	}
}
