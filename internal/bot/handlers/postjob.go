package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"jobboard-bot/internal/bot/utils"
	"jobboard-bot/internal/flow"
	"jobboard-bot/internal/models"
	"jobboard-bot/internal/session"
	"jobboard-bot/internal/validate"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// postJobFlow builds the job-posting form. The first step offers the
// employer's approved companies as buttons, so the definition is rebuilt
// against the database on every input.
func postJobFlow(ctx *Context, dbCtx context.Context, chatID int64) *flow.Flow {
	companies, err := ctx.Store.ApprovedCompaniesByOwner(dbCtx, chatID)
	if err != nil {
		ctx.Logger.Error("failed to load companies for job flow",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return nil
	}

	companyNames := make([]string, 0, len(companies))
	for _, company := range companies {
		companyNames = append(companyNames, company.Name)
	}

	return &flow.Flow{
		Name:    flowJobPost,
		First:   "company",
		Steps:   jobPostSteps(companyNames),
		Summary: utils.FormatJobSummary,
		Commit: func(cctx context.Context, s *session.Session) (string, error) {
			job, err := jobFromAcc(ctx, cctx, s)
			if err != nil {
				return "", err
			}

			if err := ctx.Store.CreateJob(cctx, job); err != nil {
				return "", flow.Storage(err)
			}

			ctx.Notify.NewJob(job, s.Get("company"))

			return "✅ Job submitted for review. It goes live once approved.", nil
		},
	}
}

// jobPostSteps is the posting form's step table. Remote jobs skip the city
// step; a negotiable salary skips amount and currency.
func jobPostSteps(companyNames []string) map[string]flow.Step {
	return map[string]flow.Step{
		"company": {
			Field:   "company",
			Prompt:  "🏢 Which company is this job for?",
			Options: companyNames,
			Next:    "title",
		},
		"title": {
			Field:    "title",
			Prompt:   "📋 What's the job title?",
			Validate: validate.JobTitle,
			Next:     "category",
		},
		"category": {
			Field:   "category",
			Prompt:  "🗂 Which category fits best?",
			Options: models.JobCategoryOptions(),
			Next:    "site",
		},
		"site": {
			Field:   "site",
			Prompt:  "📍 Is the job on-site or remote?",
			Options: models.JobSiteOptions(),
			NextFunc: func(value string, _ map[string]string) string {
				// Remote jobs have no city to ask about.
				if value == "Remote" {
					return "employment_type"
				}
				return "city"
			},
		},
		"city": {
			Field:   "city",
			Prompt:  "🏙 Which city?",
			Options: models.CityOptions(),
			Next:    "employment_type",
		},
		"employment_type": {
			Field:   "employment_type",
			Prompt:  "What type of employment?",
			Options: models.EmploymentTypeOptions(),
			Next:    "sector",
		},
		"sector": {
			Field:   "sector",
			Prompt:  "Which sector?",
			Options: models.SectorOptions(),
			Next:    "education",
		},
		"education": {
			Field:   "education",
			Prompt:  "🎓 What education level is required?",
			Options: models.EducationOptions(),
			Next:    "experience",
		},
		"experience": {
			Field:   "experience",
			Prompt:  "💼 How much experience is required?",
			Options: models.ExperienceOptions(),
			Next:    "gender_pref",
		},
		"gender_pref": {
			Field:   "gender_pref",
			Prompt:  "Any gender preference?",
			Options: models.GenderPrefOptions(),
			Next:    "vacancies",
		},
		"vacancies": {
			Field:    "vacancies",
			Prompt:   "👥 How many vacancies?",
			Validate: validate.PositiveInt,
			Next:     "salary_type",
		},
		"salary_type": {
			Field:   "salary_type",
			Prompt:  "💰 Is the salary fixed or negotiable?",
			Options: models.SalaryTypeOptions(),
			NextFunc: func(value string, _ map[string]string) string {
				if value == "Negotiable" {
					return "deadline"
				}
				return "salary_amount"
			},
		},
		"salary_amount": {
			Field:    "salary_amount",
			Prompt:   "What's the monthly salary?",
			Validate: validate.PositiveInt,
			Next:     "salary_currency",
		},
		"salary_currency": {
			Field:   "salary_currency",
			Prompt:  "In which currency?",
			Options: models.CurrencyOptions(),
			Next:    "deadline",
		},
		"deadline": {
			Field:    "deadline",
			Prompt:   "📅 Application deadline? (YYYY-MM-DD)",
			Validate: validate.FutureDate,
			Next:     "description",
		},
		"description": {
			Field:    "description",
			Prompt:   "📝 Finally, describe the job.",
			Validate: validate.FreeText,
			Next:     flow.StateConfirm,
		},
	}
}

// jobFromAcc converts the accumulator into a Job row, resolving the chosen
// company name back to its id.
func jobFromAcc(ctx *Context, cctx context.Context, s *session.Session) (*models.Job, error) {
	companies, err := ctx.Store.ApprovedCompaniesByOwner(cctx, s.ChatID)
	if err != nil {
		return nil, flow.Storage(err)
	}

	var companyID int64
	for _, company := range companies {
		if company.Name == s.Get("company") {
			companyID = company.ID
			break
		}
	}
	if companyID == 0 {
		return nil, flow.Storage(fmt.Errorf("company %q is not approved for chat %d", s.Get("company"), s.ChatID))
	}

	if !models.IsValidJobSite(s.Get("site")) {
		return nil, flow.Storage(fmt.Errorf("unknown job site %q", s.Get("site")))
	}
	if !models.IsValidEmployment(s.Get("employment_type")) {
		return nil, flow.Storage(fmt.Errorf("unknown employment type %q", s.Get("employment_type")))
	}

	vacancies, err := strconv.Atoi(s.Get("vacancies"))
	if err != nil {
		return nil, flow.Storage(err)
	}

	deadline, err := time.Parse("2006-01-02", s.Get("deadline"))
	if err != nil {
		return nil, flow.Storage(err)
	}

	job := &models.Job{
		CompanyID:      companyID,
		PostedBy:       s.ChatID,
		Title:          s.Get("title"),
		Category:       s.Get("category"),
		EmploymentType: s.Get("employment_type"),
		Sector:         s.Get("sector"),
		Education:      s.Get("education"),
		Experience:     s.Get("experience"),
		GenderPref:     s.Get("gender_pref"),
		Description:    s.Get("description"),
		Deadline:       deadline,
		Vacancies:      vacancies,
	}

	if s.Get("site") == "Remote" {
		job.Site = models.JobSiteRemote
		job.City = stringPtr(models.LocationAnywhere)
	} else {
		job.Site = models.JobSiteOnSite
		job.City = stringPtr(s.Get("city"))
	}

	job.SalaryType = stringPtr(s.Get("salary_type"))
	if amount := s.Get("salary_amount"); amount != "" {
		n, err := strconv.Atoi(amount)
		if err != nil {
			return nil, flow.Storage(err)
		}
		job.SalaryAmount = &n
		job.SalaryCurrency = stringPtr(s.Get("salary_currency"))
	}

	return job, nil
}

// HandlePostJob starts the posting flow from the employer menu. Posting
// requires at least one approved company.
func HandlePostJob(ctx *Context, c tele.Context, sess *session.Session) error {
	if sess.Role != models.RoleEmployer {
		return c.Send("Only employers can post jobs.")
	}

	dbCtx, cancel := dbContext()
	defer cancel()

	companies, err := ctx.Store.ApprovedCompaniesByOwner(dbCtx, sess.ChatID)
	if err != nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}

	if len(companies) == 0 {
		return c.Send(
			"You need an approved company before posting jobs. "+
				"Register one and wait for verification.",
			utils.MainMenuKeyboard(sess.Role),
		)
	}

	f := postJobFlow(ctx, dbCtx, sess.ChatID)
	if f == nil {
		return c.Send("😔 Something went wrong. Please try again later.")
	}

	prompt, err := ctx.Engine.Start(dbCtx, sess, f)
	if err != nil {
		return c.Send(prompt.Text)
	}

	return sendPrompt(c, sess, prompt)
}
