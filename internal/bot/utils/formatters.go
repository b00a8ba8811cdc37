package utils

import (
	"fmt"
	"strings"

	"jobboard-bot/internal/models"
)

// Format a job card for Telegram
func FormatJob(job *models.Job, companyName string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n\n", EscapeMarkdown(job.Title)))

	if companyName != "" {
		sb.WriteString(fmt.Sprintf("🏢 *Company:* %s\n", EscapeMarkdown(companyName)))
	}

	sb.WriteString(fmt.Sprintf("🗂 *Category:* %s\n", EscapeMarkdown(job.Category)))
	sb.WriteString(fmt.Sprintf("📍 *Location:* %s\n", EscapeMarkdown(FormatJobLocation(job))))
	sb.WriteString(fmt.Sprintf("📋 *Type:* %s\n", EscapeMarkdown(job.EmploymentType)))
	sb.WriteString(fmt.Sprintf("🎓 *Education:* %s\n", EscapeMarkdown(job.Education)))
	sb.WriteString(fmt.Sprintf("💼 *Experience:* %s\n", EscapeMarkdown(job.Experience)))
	sb.WriteString(fmt.Sprintf("💰 *Salary:* %s\n", EscapeMarkdown(FormatSalary(job))))
	sb.WriteString(fmt.Sprintf("👥 *Vacancies:* %d\n", job.Vacancies))
	sb.WriteString(fmt.Sprintf("📅 *Deadline:* %s\n", EscapeMarkdown(job.Deadline.Format("2006-01-02"))))

	if job.Description != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", EscapeMarkdown(TruncateString(job.Description, 400))))
	}

	return sb.String()
}

func FormatJobLocation(job *models.Job) string {
	if job.Site == models.JobSiteRemote {
		return "Remote"
	}
	var parts []string
	if job.City != nil && *job.City != "" {
		parts = append(parts, *job.City)
	}
	if job.Country != nil && *job.Country != "" {
		parts = append(parts, *job.Country)
	}
	if len(parts) == 0 {
		return "On-site"
	}
	return strings.Join(parts, ", ")
}

func FormatSalary(job *models.Job) string {
	if job.SalaryAmount == nil {
		if job.SalaryType != nil && *job.SalaryType != "" {
			return *job.SalaryType
		}
		return "not specified"
	}

	currency := ""
	if job.SalaryCurrency != nil {
		currency = " " + *job.SalaryCurrency
	}

	return fmt.Sprintf("%d%s", *job.SalaryAmount, currency)
}

// FormatListHeader renders a one-based cursor position ("Job 2 of 7").
func FormatListHeader(noun string, index, total int) string {
	return fmt.Sprintf("📄 %s %d of %d", noun, index+1, total)
}

func FormatProfile(actor *models.Actor) string {
	var sb strings.Builder

	sb.WriteString("*👤 Your profile*\n\n")
	sb.WriteString(fmt.Sprintf("*Name:* %s\n", EscapeMarkdown(actor.FullName())))
	sb.WriteString(fmt.Sprintf("*Role:* %s\n", EscapeMarkdown(actor.Role)))

	if actor.Email != nil {
		sb.WriteString(fmt.Sprintf("*Email:* %s\n", EscapeMarkdown(*actor.Email)))
	}
	if actor.Phone != nil {
		sb.WriteString(fmt.Sprintf("*Phone:* %s\n", EscapeMarkdown(*actor.Phone)))
	}
	if actor.Gender != nil {
		sb.WriteString(fmt.Sprintf("*Gender:* %s\n", EscapeMarkdown(*actor.Gender)))
	}
	if actor.Age != nil {
		sb.WriteString(fmt.Sprintf("*Age:* %d\n", *actor.Age))
	}
	if actor.Country != nil {
		sb.WriteString(fmt.Sprintf("*Country:* %s\n", EscapeMarkdown(*actor.Country)))
	}
	if actor.City != nil {
		sb.WriteString(fmt.Sprintf("*City:* %s\n", EscapeMarkdown(*actor.City)))
	}
	if len(actor.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("*Skills:* %s\n", EscapeMarkdown(strings.Join(actor.Skills, ", "))))
	}

	return sb.String()
}

func FormatCompany(company *models.Company) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n\n", EscapeMarkdown(company.Name)))
	sb.WriteString(fmt.Sprintf("*Type:* %s\n", EscapeMarkdown(company.Kind)))
	sb.WriteString(fmt.Sprintf("*Status:* %s\n", EscapeMarkdown(company.Status)))

	verified := "no"
	if company.Verified {
		verified = "yes"
	}
	sb.WriteString(fmt.Sprintf("*Verified:* %s\n", verified))

	return sb.String()
}

// Registration summary rendered at the confirm step, built from the
// accumulator so the user reviews exactly what will be written.
func FormatRegistrationSummary(acc map[string]string) string {
	var sb strings.Builder

	sb.WriteString("*Please review your details:*\n\n")
	writeAccLine(&sb, "First name", acc["first_name"])
	writeAccLine(&sb, "Last name", acc["last_name"])
	writeAccLine(&sb, "Email", acc["email"])
	writeAccLine(&sb, "Phone", acc["phone"])
	writeAccLine(&sb, "Gender", acc["gender"])
	writeAccLine(&sb, "Age", acc["age"])
	writeAccLine(&sb, "Country", acc["country"])
	writeAccLine(&sb, "City", acc["city"])

	return sb.String()
}

func FormatCompanySummary(acc map[string]string) string {
	var sb strings.Builder

	sb.WriteString("*Please review the company details:*\n\n")
	writeAccLine(&sb, "Type", acc["kind"])
	writeAccLine(&sb, "Name", acc["name"])
	writeAccLine(&sb, "Trade license", acc["trade_license_ref"])
	writeAccLine(&sb, "Authorized person", acc["authorized_person_ref"])
	writeAccLine(&sb, "Authorization letter", acc["authorization_letter_ref"])

	return sb.String()
}

func FormatJobSummary(acc map[string]string) string {
	var sb strings.Builder

	sb.WriteString("*Please review the job posting:*\n\n")
	writeAccLine(&sb, "Title", acc["title"])
	writeAccLine(&sb, "Category", acc["category"])
	writeAccLine(&sb, "Site", acc["site"])
	writeAccLine(&sb, "Employment", acc["employment_type"])
	writeAccLine(&sb, "Sector", acc["sector"])
	writeAccLine(&sb, "Education", acc["education"])
	writeAccLine(&sb, "Experience", acc["experience"])
	writeAccLine(&sb, "Gender preference", acc["gender_pref"])
	writeAccLine(&sb, "Vacancies", acc["vacancies"])
	writeAccLine(&sb, "City", acc["city"])
	writeAccLine(&sb, "Salary", acc["salary_amount"])
	writeAccLine(&sb, "Currency", acc["salary_currency"])
	writeAccLine(&sb, "Deadline", acc["deadline"])
	writeAccLine(&sb, "Description", TruncateString(acc["description"], 200))

	return sb.String()
}

func FormatApplicationSummary(acc map[string]string) string {
	var sb strings.Builder

	sb.WriteString("*Please review your application:*\n\n")

	cover := acc["cover_letter"]
	if cover == "" {
		cover = "none"
	}
	writeAccLine(&sb, "Cover letter", TruncateString(cover, 200))

	cv := acc["cv_ref"]
	if cv == "" {
		cv = "none"
	} else {
		cv = "attached"
	}
	writeAccLine(&sb, "CV", cv)

	portfolio := acc["portfolio"]
	if portfolio == "" {
		portfolio = "none"
	}
	writeAccLine(&sb, "Portfolio", portfolio)

	return sb.String()
}

func writeAccLine(sb *strings.Builder, label, value string) {
	if value == "" {
		value = "—"
	}
	sb.WriteString(fmt.Sprintf("• *%s:* %s\n", EscapeMarkdown(label), EscapeMarkdown(value)))
}

func FormatWelcomeMessage(firstName, role string) string {
	name := firstName
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(`👋 Hi, *%s*\!

You are signed in as *%s*\.

Use the menu below, or:
/jobs \- browse open jobs
/profile \- view your profile
/help \- help`, EscapeMarkdown(name), EscapeMarkdown(role))
}

func FormatHelpMessage() string {
	return `*📖 Help*

/start \- start or resume
/jobs \- browse open jobs
/profile \- view your profile
/cancel \- cancel the current form

*Applicants* can browse, save and apply for jobs, and let the bot draft a
cover letter\.

*Employers* can register a company, post jobs and review applicants\.

Every form can be cancelled at any step with /cancel\.`
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

// TruncateString shortens s to at most maxLen characters, ellipsized. The
// cut lands on a rune boundary so a truncated card never carries a split
// code point into MarkdownV2.
func TruncateString(s string, maxLen int) string {
	if maxLen < 3 {
		maxLen = 3
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
