package prompts

import (
	"embed"
	"text/template"
)

//go:embed templates
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.tmpl", "templates/tasks/*.tmpl"))

const (
	AgentSystemTemplate  = "agent_system.tmpl"
	TaskTemplate         = "task.tmpl"
	ForceFinalTemplate   = "force_final.tmpl"
	DelegateWorkTemplate = "delegate_work.tmpl"
	AskQuestionTemplate  = "ask_question.tmpl"
)
