package prompts

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

// AnalystPromptData feeds the annual-report QA templates. Company may be
// empty; FinancialSummary is omitted from the prompt when blank.
type AnalystPromptData struct {
	Company          string
	FinancialSummary string
	Context          string
	Query            string
}

// RenderAnalystPrompt renders the system and user prompts for one query from
// the embedded templates.
func RenderAnalystPrompt(data AnalystPromptData) (systemPrompt, userPrompt string, err error) {
	if data.Company == "" {
		data.Company = "the company"
	}

	systemPrompt, err = render("templates/analyst_system.md", data)
	if err != nil {
		return "", "", err
	}

	userPrompt, err = render("templates/analyst_user.md", data)
	if err != nil {
		return "", "", err
	}

	return systemPrompt, userPrompt, nil
}

func render(name string, data AnalystPromptData) (string, error) {
	content, err := templatesFS.ReadFile(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
