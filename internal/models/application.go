package models

import (
	"time"

	"github.com/lib/pq"
)

// Application statuses as the employer works through candidates
const (
	ApplicationStatusApplied     = "applied"
	ApplicationStatusSeen        = "seen"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusApproved    = "approved"
	ApplicationStatusRejected    = "rejected"
)

type Application struct {
	ID          int64          `db:"id"`
	JobID       int64          `db:"job_id"`
	ActorID     int64          `db:"actor_id"`
	CoverLetter *string        `db:"cover_letter"`
	CVRef       *string        `db:"cv_ref"`
	Portfolio   pq.StringArray `db:"portfolio"`
	Note        *string        `db:"note"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
}

type SavedJob struct {
	ID        int64     `db:"id"`
	JobID     int64     `db:"job_id"`
	ActorID   int64     `db:"actor_id"`
	CreatedAt time.Time `db:"created_at"`
}
