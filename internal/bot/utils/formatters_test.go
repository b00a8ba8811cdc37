package utils

import (
	"testing"
	"time"
	"unicode/utf8"

	"jobboard-bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a\.b\-c\!`, EscapeMarkdown("a.b-c!"))
	assert.Equal(t, `\*bold\*`, EscapeMarkdown("*bold*"))
	assert.Equal(t, "plain text", EscapeMarkdown("plain text"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "lo...", TruncateString("long enough", 5))

	// A budget smaller than the ellipsis degrades to a bare ellipsis
	// instead of panicking.
	assert.Equal(t, "...", TruncateString("long enough", 2))
	assert.Equal(t, "...", TruncateString("long enough", 0))

	// The cut never splits a multi-byte rune.
	cut := TruncateString("የሥራ ማስታወቂያ ሰሌዳ", 7)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, "የሥራ ...", cut)
}

func TestFormatListHeaderIsOneBased(t *testing.T) {
	assert.Equal(t, "📄 Job 1 of 7", FormatListHeader("Job", 0, 7))
	assert.Equal(t, "📄 Job 7 of 7", FormatListHeader("Job", 6, 7))
}

func TestFormatSalary(t *testing.T) {
	amount := 15000
	currency := "ETB"
	negotiable := "Negotiable"

	assert.Equal(t, "15000 ETB", FormatSalary(&models.Job{SalaryAmount: &amount, SalaryCurrency: &currency}))
	assert.Equal(t, "Negotiable", FormatSalary(&models.Job{SalaryType: &negotiable}))
	assert.Equal(t, "not specified", FormatSalary(&models.Job{}))
}

func TestFormatJobLocation(t *testing.T) {
	city := "Addis Ababa"

	assert.Equal(t, "Remote", FormatJobLocation(&models.Job{Site: models.JobSiteRemote}))
	assert.Equal(t, "Addis Ababa", FormatJobLocation(&models.Job{Site: models.JobSiteOnSite, City: &city}))
	assert.Equal(t, "On-site", FormatJobLocation(&models.Job{Site: models.JobSiteOnSite}))
}

func TestFormatJobEscapesUserContent(t *testing.T) {
	job := &models.Job{
		Title:          "C++ Developer (Senior)",
		Category:       "IT and Software",
		Site:           models.JobSiteRemote,
		EmploymentType: "Full-time",
		Education:      "Bachelor's degree",
		Experience:     "3-5 years",
		Deadline:       time.Date(2030, 6, 30, 0, 0, 0, 0, time.UTC),
		Vacancies:      2,
	}

	card := FormatJob(job, "Acme (ET)")
	assert.Contains(t, card, `C\+\+ Developer \(Senior\)`)
	assert.Contains(t, card, `Acme \(ET\)`)
	assert.Contains(t, card, `2030\-06\-30`)
}
