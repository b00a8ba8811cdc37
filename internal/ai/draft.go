// Package ai drafts cover letters for applicants. The draft is a suggestion
// only; the applicant can edit, replace or discard it.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const draftPrompt = `Write a short, professional cover letter (at most 150 words)
for the following job application. Plain text only, no placeholders.

Job title: %s
Company: %s
Job description: %s
Applicant name: %s
Applicant skills: %s`

type DraftRequest struct {
	JobTitle    string
	CompanyName string
	Description string
	FirstName   string
	Skills      []string
}

// Generator produces cover-letter drafts via Gemini. Without an API key it
// degrades to a deterministic template so the apply flow keeps working.
type Generator struct {
	model  llms.Model
	logger *zap.Logger
}

func New(ctx context.Context, apiKey string, logger *zap.Logger) (*Generator, error) {
	if apiKey == "" {
		logger.Info("no Gemini API key configured, using template drafts")
		return &Generator{logger: logger}, nil
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	logger.Info("Gemini draft generator initialized")

	return &Generator{
		model:  model,
		logger: logger,
	}, nil
}

func (g *Generator) CoverLetter(ctx context.Context, req DraftRequest) (string, error) {
	if g.model == nil {
		return g.template(req), nil
	}

	prompt := fmt.Sprintf(draftPrompt,
		req.JobTitle,
		req.CompanyName,
		req.Description,
		req.FirstName,
		strings.Join(req.Skills, ", "),
	)

	draft, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		g.logger.Warn("draft generation failed, falling back to template",
			zap.String("job_title", req.JobTitle),
			zap.Error(err),
		)
		return g.template(req), nil
	}

	return strings.TrimSpace(draft), nil
}

func (g *Generator) template(req DraftRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Dear %s hiring team,\n\n", req.CompanyName))
	sb.WriteString(fmt.Sprintf("I am writing to apply for the %s position. ", req.JobTitle))
	if len(req.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("My background in %s matches the role well. ", strings.Join(req.Skills, ", ")))
	}
	sb.WriteString("I would welcome the chance to discuss how I can contribute to your team.\n\n")
	sb.WriteString(fmt.Sprintf("Kind regards,\n%s", req.FirstName))

	return sb.String()
}
