package models

import "time"

// Job moderation statuses
const (
	JobStatusPending  = "pending"
	JobStatusApproved = "approved"
	JobStatusRejected = "rejected"
)

const (
	JobSiteOnSite = "on-site"
	JobSiteRemote = "remote"

	// Location placeholder for remote jobs
	LocationAnywhere = "anywhere"
)

type Job struct {
	ID             int64     `db:"id"`
	CompanyID      int64     `db:"company_id"`
	PostedBy       int64     `db:"posted_by"` // employer chat_id
	Title          string    `db:"title"`
	Category       string    `db:"category"`
	Site           string    `db:"site"` // on-site | remote
	EmploymentType string    `db:"employment_type"`
	Sector         string    `db:"sector"`
	Education      string    `db:"education"`
	Experience     string    `db:"experience"`
	GenderPref     string    `db:"gender_pref"`
	Description    string    `db:"description"`
	City           *string   `db:"city"`
	Country        *string   `db:"country"`
	SalaryType     *string   `db:"salary_type"`
	SalaryAmount   *int      `db:"salary_amount"`
	SalaryCurrency *string   `db:"salary_currency"`
	Deadline       time.Time `db:"deadline"`
	Vacancies      int       `db:"vacancies"`
	Status         string    `db:"status"`
	Promoted       bool      `db:"promoted"`
	Closed         bool      `db:"closed"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Open reports whether the job is visible to applicants.
func (j *Job) Open() bool {
	return j.Status == JobStatusApproved && !j.Closed
}
